package handlers

import (
	"net/http"

	"canteen-queue-api/models"

	"github.com/gin-gonic/gin"
)

type CreateTokenRequest struct {
	CanteenID  string `json:"canteen_id" binding:"required"`
	CouponCode string `json:"coupon_code"`
	FoodItem   string `json:"food_item" binding:"required"`
}

// CreateToken issues a token for the physical campus queue
func CreateToken(c *gin.Context) {
	var req CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := models.MenuItemByID(req.FoodItem); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown food item: " + req.FoodItem})
		return
	}
	canteen, err := Queue.Store().Canteens().ByID(req.CanteenID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load canteen"})
		return
	}
	if canteen == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Canteen not found"})
		return
	}

	token, err := Queue.IssueCampusToken(req.CanteenID, req.CouponCode, req.FoodItem)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Token issued successfully",
		"token":   token,
	})
}

type CreateOnlineOrderRequest struct {
	CanteenID string `json:"canteen_id" binding:"required"`
	FoodItem  string `json:"food_item" binding:"required"`
	UserEmail string `json:"user_email" binding:"required,email"`
	UserPhone string `json:"user_phone" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
}

// CreateOnlineOrder issues a token for a prepaid online order. Payment
// was confirmed on the client; payment_id is carried as-is.
func CreateOnlineOrder(c *gin.Context) {
	var req CreateOnlineOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := models.MenuItemByID(req.FoodItem); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown food item: " + req.FoodItem})
		return
	}
	canteen, err := Queue.Store().Canteens().ByID(req.CanteenID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load canteen"})
		return
	}
	if canteen == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Canteen not found"})
		return
	}

	token, err := Queue.IssueOnlineOrder(req.CanteenID, req.FoodItem, req.UserEmail, req.UserPhone, req.PaymentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create online order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Online order placed successfully",
		"token":   token,
	})
}

// GetTokenStatus returns a single token by id
func GetTokenStatus(c *gin.Context) {
	token, err := Queue.TokenByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load token"})
		return
	}
	if token == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Token not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetQueuePosition returns the 1-based position among WAITING tokens.
// Position 0 means the token is no longer waiting — not an error.
func GetQueuePosition(c *gin.Context) {
	canteenID := c.Param("id")
	tokenID := c.Param("tokenId")
	queueType := models.QueueType(c.Query("queue_type"))

	position, err := Queue.QueuePosition(canteenID, tokenID, queueType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute position"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token_id": tokenID,
		"position": position,
	})
}

// GetCampusQueue lists the active physical queue of a canteen
func GetCampusQueue(c *gin.Context) {
	respondQueue(c, models.QueueCampus)
}

// GetOnlineQueue lists the active online queue of a canteen
func GetOnlineQueue(c *gin.Context) {
	respondQueue(c, models.QueueOnline)
}

func respondQueue(c *gin.Context, queueType models.QueueType) {
	queue, err := Queue.ActiveQueue(c.Param("id"), queueType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load queue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"queue_type": queueType,
		"count":      len(queue),
		"queue":      queue,
	})
}
