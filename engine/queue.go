package engine

import (
	"sort"

	"canteen-queue-api/models"
)

// ActiveQueue returns the WAITING and READY tokens for a canteen in
// ascending creation order. An empty queueType matches both queues.
// The store gives no ordering guarantee, so the sort here is load-bearing.
func (e *Engine) ActiveQueue(canteenID string, queueType models.QueueType) ([]models.Token, error) {
	tokens, err := e.store.Tokens().All()
	if err != nil {
		return nil, err
	}

	var queue []models.Token
	for _, t := range tokens {
		if t.CanteenID != canteenID || !t.IsActive() {
			continue
		}
		if queueType != "" && t.QueueType != queueType {
			continue
		}
		queue = append(queue, t)
	}

	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].Timestamp.Before(queue[j].Timestamp)
	})
	return queue, nil
}

// QueuePosition returns the 1-based rank of a token among the WAITING
// tokens of its scope, or 0 when the token is not waiting there — an
// already-READY, completed, or unknown token is not an error.
func (e *Engine) QueuePosition(canteenID, tokenID string, queueType models.QueueType) (int, error) {
	tokens, err := e.store.Tokens().All()
	if err != nil {
		return 0, err
	}

	var waiting []models.Token
	for _, t := range tokens {
		if t.CanteenID != canteenID || t.Status != models.StatusWaiting {
			continue
		}
		if queueType != "" && t.QueueType != queueType {
			continue
		}
		waiting = append(waiting, t)
	}

	sort.SliceStable(waiting, func(i, j int) bool {
		return waiting[i].Timestamp.Before(waiting[j].Timestamp)
	})

	for i, t := range waiting {
		if t.ID == tokenID {
			return i + 1, nil
		}
	}
	return 0, nil
}

// TokenByID returns the token or nil when unknown.
func (e *Engine) TokenByID(tokenID string) (*models.Token, error) {
	return e.store.Tokens().ByID(tokenID)
}
