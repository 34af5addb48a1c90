package engine

import (
	"canteen-queue-api/models"
	"canteen-queue-api/store"

	"github.com/google/uuid"
)

// MarkReady moves a token to READY. A missing token is a silent no-op;
// an existing one is overwritten unconditionally, matching the staff
// terminal's call-next-token behavior.
func (e *Engine) MarkReady(tokenID string) error {
	token, err := e.store.Tokens().ByID(tokenID)
	if err != nil {
		return err
	}
	if token == nil {
		return nil
	}

	token.Status = models.StatusReady
	if err := e.store.Tokens().Upsert(token); err != nil {
		return err
	}
	e.store.Notify(store.EntityTokens)
	return nil
}

// Complete marks a token COMPLETED and stamps the completion time.
func (e *Engine) Complete(tokenID string) error {
	token, err := e.store.Tokens().ByID(tokenID)
	if err != nil {
		return err
	}
	if token == nil {
		return nil
	}

	now := e.now()
	token.Status = models.StatusCompleted
	token.CompletedAt = &now
	if err := e.store.Tokens().Upsert(token); err != nil {
		return err
	}
	e.store.Notify(store.EntityTokens)
	return nil
}

// CompleteWithAnnotation completes a token, attaches the given reasoning
// if any, and appends the one history entry future estimations feed on.
// This is the only path that produces history data.
func (e *Engine) CompleteWithAnnotation(tokenID, reasoning string) error {
	token, err := e.store.Tokens().ByID(tokenID)
	if err != nil {
		return err
	}
	if token == nil {
		return nil
	}

	now := e.now()
	token.Status = models.StatusCompleted
	token.CompletedAt = &now
	if reasoning != "" {
		token.AIReasoning = reasoning
	}
	if err := e.store.Tokens().Upsert(token); err != nil {
		return err
	}
	e.store.Notify(store.EntityTokens)

	entry := &models.HistoryEntry{
		ID:              uuid.NewString(),
		FoodItem:        token.FoodItem,
		PrepTimeMinutes: roundMinutes(now.Sub(token.Timestamp)),
		Hour:            token.Timestamp.Hour(),
		Timestamp:       now,
	}
	return e.store.History().Append(entry)
}

// UpdateEstimation overwrites a token's wait estimate with a predicted
// value, keeping the reasoning alongside for the student to read.
func (e *Engine) UpdateEstimation(tokenID string, minutes int, reasoning string) error {
	token, err := e.store.Tokens().ByID(tokenID)
	if err != nil {
		return err
	}
	if token == nil {
		return nil
	}

	token.EstimatedWaitTimeMinutes = minutes
	if reasoning != "" {
		token.AIReasoning = reasoning
	}
	if err := e.store.Tokens().Upsert(token); err != nil {
		return err
	}
	e.store.Notify(store.EntityTokens)
	return nil
}
