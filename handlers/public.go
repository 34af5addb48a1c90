package handlers

import (
	"math/rand"
	"net/http"

	"canteen-queue-api/models"
	"canteen-queue-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetMenu returns the fixed canteen menu (public)
func GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"count": len(models.MenuItems),
		"menu":  models.MenuItems,
	})
}

// ListCanteens returns all registered canteens (public)
func ListCanteens(c *gin.Context) {
	canteens, err := Queue.Store().Canteens().All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load canteens"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(canteens),
		"canteens": canteens,
	})
}

// GetCanteen returns a single canteen, e.g. after a QR scan
func GetCanteen(c *gin.Context) {
	canteen, err := Queue.Store().Canteens().ByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load canteen"})
		return
	}
	if canteen == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Canteen not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"canteen": canteen})
}

type RegisterCanteenRequest struct {
	Name   string `json:"name" binding:"required"`
	Campus string `json:"campus" binding:"required"`
}

// RegisterCanteen creates a canteen with a randomly assigned theme
func RegisterCanteen(c *gin.Context) {
	var req RegisterCanteenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	canteen := models.Canteen{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Campus:     req.Campus,
		ThemeColor: models.ThemeGradients[rand.Intn(len(models.ThemeGradients))],
	}
	if err := Queue.Store().Canteens().Upsert(&canteen); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register canteen"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Canteen registered successfully",
		"canteen": canteen,
	})
}

// GetStateMachineInfo returns the full token state machine for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{"COMPLETED", "CANCELLED"},
		"description":     "Canteen Queue Token Lifecycle State Machine",
	})
}
