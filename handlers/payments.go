package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CreatePaymentOrderRequest struct {
	Amount   int64             `json:"amount" binding:"required,min=1"` // paise
	Currency string            `json:"currency" binding:"required"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

// CreatePaymentOrder relays an order-creation call to the payment
// gateway so the checkout widget can open against a real order id.
func CreatePaymentOrder(c *gin.Context) {
	var req CreatePaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount and currency are required"})
		return
	}

	if !Payments.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment gateway not configured"})
		return
	}

	order, err := Payments.CreateOrder(c.Request.Context(), req.Amount, req.Currency, req.Receipt, req.Notes)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}
