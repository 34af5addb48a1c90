package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats returns the same-day summary for a canteen — admin only
func GetStats(c *gin.Context) {
	stats, err := Queue.Stats(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetHourlyTraffic returns today's per-hour order histogram — admin only
func GetHourlyTraffic(c *gin.Context) {
	traffic, err := Queue.HourlyTraffic(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute traffic"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"traffic": traffic})
}

// GetTodaysOrderSummary returns today's completed orders per food item — admin only
func GetTodaysOrderSummary(c *gin.Context) {
	summary, err := Queue.TodaysOrderSummary(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(summary),
		"summary": summary,
	})
}

// GetQueueInsights returns the AI-generated daily report — admin only.
// Insight failures degrade to a plain-text summary, never an error.
func GetQueueInsights(c *gin.Context) {
	stats, err := Queue.Stats(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	summary, err := Queue.TodaysOrderSummary(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}
	report := Insights.QueueInsights(c.Request.Context(), *stats, summary)
	c.JSON(http.StatusOK, gin.H{
		"stats":    stats,
		"summary":  summary,
		"insights": report,
	})
}

// GetHistory dumps the completion log, optionally per food item — admin only
func GetHistory(c *gin.Context) {
	var err error
	var entries interface{}
	if foodItem := c.Query("food_item"); foodItem != "" {
		entries, err = Queue.HistoryForFood(foodItem)
	} else {
		entries, err = Queue.AllHistory()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}
