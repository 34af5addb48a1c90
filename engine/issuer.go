package engine

import (
	"fmt"

	"canteen-queue-api/models"
	"canteen-queue-api/store"

	"github.com/google/uuid"
)

const (
	campusEstimateMinutes = 5
	onlineEstimateMinutes = 8
)

// IssueCampusToken creates a WAITING token for the physical pickup queue.
// The display number is sequential within (canteen, CAMPUS, today).
func (e *Engine) IssueCampusToken(canteenID, couponCode, foodItem string) (*models.Token, error) {
	token := &models.Token{
		ID:                       uuid.NewString(),
		CanteenID:                canteenID,
		CouponCode:               couponCode,
		FoodItem:                 foodItem,
		Status:                   models.StatusWaiting,
		QueueType:                models.QueueCampus,
		EstimatedWaitTimeMinutes: campusEstimateMinutes,
	}
	if err := e.issue(token); err != nil {
		return nil, err
	}
	return token, nil
}

// IssueOnlineOrder creates a WAITING token for a prepaid online order.
// The caller guarantees the payment behind paymentID was already
// confirmed; no verification happens here.
func (e *Engine) IssueOnlineOrder(canteenID, foodItem, userEmail, userPhone, paymentID string) (*models.Token, error) {
	token := &models.Token{
		ID:                       uuid.NewString(),
		CanteenID:                canteenID,
		CouponCode:               "",
		FoodItem:                 foodItem,
		Status:                   models.StatusWaiting,
		QueueType:                models.QueueOnline,
		EstimatedWaitTimeMinutes: onlineEstimateMinutes,
		PaymentID:                paymentID,
		PaymentStatus:            models.PaymentCompleted,
		UserEmail:                userEmail,
		UserPhone:                userPhone,
	}
	if err := e.issue(token); err != nil {
		return nil, err
	}
	return token, nil
}

// issue assigns the next sequence number in the token's scope, stamps the
// creation time, writes the record, and broadcasts one change.
func (e *Engine) issue(token *models.Token) error {
	e.issueMu.Lock()
	defer e.issueMu.Unlock()

	tokens, err := e.store.Tokens().All()
	if err != nil {
		return err
	}

	today := e.startOfToday()
	sequence := 1
	for _, t := range tokens {
		if t.CanteenID == token.CanteenID && t.QueueType == token.QueueType && !t.Timestamp.Before(today) {
			sequence++
		}
	}

	token.TokenNumber = fmt.Sprintf("A-%03d", sequence)
	token.Timestamp = e.now()

	if err := e.store.Tokens().Upsert(token); err != nil {
		return err
	}
	e.store.Notify(store.EntityTokens)
	return nil
}
