package engine_test

import (
	"testing"
	"time"

	"canteen-queue-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePositionScenario(t *testing.T) {
	e, _, clock := newTestEngine(t)

	var ids []string
	for i := 0; i < 3; i++ {
		token, err := e.IssueCampusToken("canteen-x", "", "samosa")
		require.NoError(t, err)
		assert.Equal(t, models.StatusWaiting, token.Status)
		ids = append(ids, token.ID)
		clock.Advance(time.Minute)
	}

	pos, err := e.QueuePosition("canteen-x", ids[1], "")
	require.NoError(t, err)
	assert.Equal(t, 2, pos)

	// Calling the first token to the counter removes it from the
	// WAITING ranking and promotes everyone behind it.
	require.NoError(t, e.MarkReady(ids[0]))

	pos, err = e.QueuePosition("canteen-x", ids[0], "")
	require.NoError(t, err)
	assert.Equal(t, 0, pos, "READY token is no longer waiting")

	pos, err = e.QueuePosition("canteen-x", ids[1], "")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
}

func TestQueuePositionIdempotent(t *testing.T) {
	e, _, _ := newTestEngine(t)

	token, err := e.IssueCampusToken("canteen-x", "", "samosa")
	require.NoError(t, err)

	first, err := e.QueuePosition("canteen-x", token.ID, "")
	require.NoError(t, err)
	second, err := e.QueuePosition("canteen-x", token.ID, "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQueuePositionUnknownToken(t *testing.T) {
	e, _, _ := newTestEngine(t)

	pos, err := e.QueuePosition("canteen-x", "no-such-token", "")
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
}

func TestQueuePositionFiltersQueueType(t *testing.T) {
	e, _, clock := newTestEngine(t)

	campus, err := e.IssueCampusToken("canteen-x", "", "samosa")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	online, err := e.IssueOnlineOrder("canteen-x", "coffee", "a@b.edu", "1", "pay_1")
	require.NoError(t, err)

	pos, err := e.QueuePosition("canteen-x", online.ID, models.QueueOnline)
	require.NoError(t, err)
	assert.Equal(t, 1, pos, "online queue ranks independently")

	pos, err = e.QueuePosition("canteen-x", online.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, pos, "unfiltered ranking spans both queues")

	pos, err = e.QueuePosition("canteen-x", campus.ID, models.QueueOnline)
	require.NoError(t, err)
	assert.Equal(t, 0, pos, "campus token is not in the online queue")
}

func TestActiveQueueOrderingAndFiltering(t *testing.T) {
	e, _, clock := newTestEngine(t)

	first, err := e.IssueCampusToken("canteen-x", "", "samosa")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	second, err := e.IssueCampusToken("canteen-x", "", "coffee")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	third, err := e.IssueCampusToken("canteen-x", "", "vadapav")
	require.NoError(t, err)

	// READY tokens stay in the active queue; COMPLETED ones drop out.
	require.NoError(t, e.MarkReady(first.ID))
	require.NoError(t, e.Complete(second.ID))

	queue, err := e.ActiveQueue("canteen-x", models.QueueCampus)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, first.ID, queue[0].ID)
	assert.Equal(t, third.ID, queue[1].ID)
}
