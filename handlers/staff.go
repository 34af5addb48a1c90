package handlers

import (
	"net/http"

	"canteen-queue-api/models"
	"canteen-queue-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetActiveQueue returns both queues of a canteen for the staff terminal
func GetActiveQueue(c *gin.Context) {
	queue, err := Queue.ActiveQueue(c.Param("id"), models.QueueType(c.Query("queue_type")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load queue"})
		return
	}

	// Dashboard summary: counts by status
	summary := map[string]int{}
	for _, t := range queue {
		summary[string(t.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"queue_summary": summary,
		"count":         len(queue),
		"queue":         queue,
	})
}

// allowTransition checks the state machine before the engine touches a
// token, so terminal states stay terminal at the HTTP surface. Missing
// tokens pass through: the engine treats them as a no-op. Returns false
// after writing the error response.
func allowTransition(c *gin.Context, tokenID string, target models.OrderStatus) bool {
	token, err := Queue.TokenByID(tokenID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load token"})
		return false
	}
	if token == nil {
		return true
	}
	if err := statemachine.CanTransition(token.Status, target, "staff"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    token.Status,
			"requested":         target,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(token.Status),
		})
		return false
	}
	return true
}

// MarkOrderReady calls a token to the counter
func MarkOrderReady(c *gin.Context) {
	tokenID := c.Param("tokenId")
	if !allowTransition(c, tokenID, models.StatusReady) {
		return
	}

	if err := Queue.MarkReady(tokenID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Token marked ready",
		"token_id": tokenID,
	})
}

// CompleteOrder hands over the order and stamps the completion time
func CompleteOrder(c *gin.Context) {
	tokenID := c.Param("tokenId")
	if !allowTransition(c, tokenID, models.StatusCompleted) {
		return
	}

	if err := Queue.Complete(tokenID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Order completed",
		"token_id": tokenID,
	})
}

type CompleteWithAnnotationRequest struct {
	Reasoning string `json:"reasoning"`
}

// CompleteOrderWithAnnotation completes an order, keeps the model's
// reasoning on the token, and records the prep-time history entry.
func CompleteOrderWithAnnotation(c *gin.Context) {
	tokenID := c.Param("tokenId")
	if !allowTransition(c, tokenID, models.StatusCompleted) {
		return
	}

	var req CompleteWithAnnotationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := Queue.CompleteWithAnnotation(tokenID, req.Reasoning); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Order completed",
		"token_id": tokenID,
	})
}

type PredictWaitRequest struct {
	CanteenID string `json:"canteen_id" binding:"required"`
	TokenID   string `json:"token_id"`
	FoodItem  string `json:"food_item" binding:"required"`
}

// PredictWait asks the insights collaborator for a wait estimate and, if
// a token id was given, stores the prediction back onto the token.
func PredictWait(c *gin.Context) {
	var req PredictWaitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := Queue.Stats(req.CanteenID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	prediction := Insights.PredictWaitTime(c.Request.Context(), stats.ActiveQueueLength, req.FoodItem, stats.AverageWaitTime)

	if req.TokenID != "" {
		if err := Queue.UpdateEstimation(req.TokenID, prediction.EstimatedMinutes, prediction.Reasoning); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store estimation"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"estimated_minutes": prediction.EstimatedMinutes,
		"reasoning":         prediction.Reasoning,
	})
}
