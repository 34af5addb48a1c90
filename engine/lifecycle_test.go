package engine_test

import (
	"testing"
	"time"

	"canteen-queue-api/models"
	"canteen-queue-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkReadyMissingTokenIsNoOp(t *testing.T) {
	e, s, _ := newTestEngine(t)

	var notified int
	s.Subscribe(store.EntityTokens, func(store.Entity) { notified++ })

	require.NoError(t, e.MarkReady("no-such-token"))
	assert.Zero(t, notified, "no write, no notification")
}

func TestCompleteStampsCompletionTime(t *testing.T) {
	e, _, clock := newTestEngine(t)

	token, err := e.IssueCampusToken("canteen-x", "", "samosa")
	require.NoError(t, err)
	clock.Advance(12 * time.Minute)

	require.NoError(t, e.Complete(token.ID))

	got, err := e.TokenByID(token.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.False(t, got.CompletedAt.Before(got.Timestamp), "completedAt must not precede creation")
	assert.Equal(t, 12*time.Minute, got.CompletedAt.Sub(got.Timestamp))
}

func TestCompleteWithAnnotationRecordsHistory(t *testing.T) {
	e, s, clock := newTestEngine(t)

	token, err := e.IssueCampusToken("canteen-x", "", "masaladosa")
	require.NoError(t, err)
	createdAt := token.Timestamp
	clock.Advance(9*time.Minute + 40*time.Second)

	require.NoError(t, e.CompleteWithAnnotation(token.ID, "fast"))

	got, err := e.TokenByID(token.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, "fast", got.AIReasoning)
	require.NotNil(t, got.CompletedAt)
	assert.False(t, got.CompletedAt.Before(createdAt))

	history, err := s.History().All()
	require.NoError(t, err)
	require.Len(t, history, 1)
	entry := history[0]
	assert.Equal(t, "masaladosa", entry.FoodItem)
	assert.Equal(t, 10, entry.PrepTimeMinutes, "9m40s rounds to 10")
	assert.Equal(t, createdAt.Hour(), entry.Hour)
}

func TestCompleteWithAnnotationWithoutReasoning(t *testing.T) {
	e, s, _ := newTestEngine(t)

	token, err := e.IssueCampusToken("canteen-x", "", "samosa")
	require.NoError(t, err)

	require.NoError(t, e.CompleteWithAnnotation(token.ID, ""))

	got, err := e.TokenByID(token.ID)
	require.NoError(t, err)
	assert.Empty(t, got.AIReasoning)

	history, err := s.History().All()
	require.NoError(t, err)
	assert.Len(t, history, 1, "history is recorded even without reasoning")
}

func TestLifecycleEmitsOneNotificationPerCall(t *testing.T) {
	e, s, _ := newTestEngine(t)

	token, err := e.IssueCampusToken("canteen-x", "", "samosa")
	require.NoError(t, err)

	var notified int
	s.Subscribe(store.EntityTokens, func(store.Entity) { notified++ })

	require.NoError(t, e.MarkReady(token.ID))
	assert.Equal(t, 1, notified)

	require.NoError(t, e.CompleteWithAnnotation(token.ID, "done"))
	assert.Equal(t, 2, notified)
}

func TestUpdateEstimation(t *testing.T) {
	e, _, _ := newTestEngine(t)

	token, err := e.IssueCampusToken("canteen-x", "", "coffee")
	require.NoError(t, err)

	require.NoError(t, e.UpdateEstimation(token.ID, 14, "It's lunch rush, so grills are busy!"))

	got, err := e.TokenByID(token.ID)
	require.NoError(t, err)
	assert.Equal(t, 14, got.EstimatedWaitTimeMinutes)
	assert.Equal(t, "It's lunch rush, so grills are busy!", got.AIReasoning)

	// Missing tokens are a silent no-op here too
	require.NoError(t, e.UpdateEstimation("no-such-token", 3, ""))
}
