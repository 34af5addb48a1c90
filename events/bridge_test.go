package events

import (
	"encoding/json"
	"testing"
	"time"

	"canteen-queue-api/store"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remoteMsg(t *testing.T, entity store.Entity, origin string) *nats.Msg {
	t.Helper()
	data, err := json.Marshal(changeEvent{
		Entity: string(entity),
		Origin: origin,
		At:     time.Now(),
	})
	require.NoError(t, err)
	return &nats.Msg{Subject: subjectPrefix + string(entity), Data: data}
}

func TestHandleIgnoresOwnOrigin(t *testing.T) {
	s := store.NewMemoryStore()
	b := newBridge(nil, s)

	var notified int
	s.Subscribe(store.EntityTokens, func(store.Entity) { notified++ })

	b.handle(remoteMsg(t, store.EntityTokens, b.origin))
	assert.Equal(t, 0, notified, "own events must not replay")
}

func TestHandleReplaysRemoteChange(t *testing.T) {
	s := store.NewMemoryStore()
	b := newBridge(nil, s)

	var notified int
	s.Subscribe(store.EntityTokens, func(store.Entity) { notified++ })

	b.handle(remoteMsg(t, store.EntityTokens, "other-instance"))
	assert.Equal(t, 1, notified)
}

func TestReplaySuppressesExactlyOnePublish(t *testing.T) {
	s := store.NewMemoryStore()
	b := newBridge(nil, s)

	// Stand-in for the bridge's own notifier subscription: the gate in
	// publish decides between bouncing the event back out and dropping it.
	var published, suppressed int
	s.Subscribe(store.EntityTokens, func(entity store.Entity) {
		if b.consumeReplay(entity) {
			suppressed++
		} else {
			published++
		}
	})

	b.handle(remoteMsg(t, store.EntityTokens, "other-instance"))
	assert.Equal(t, 1, suppressed, "the replay itself must not go back out")
	assert.Equal(t, 0, published)

	// A genuine local change right after the replay still publishes.
	s.Notify(store.EntityTokens)
	assert.Equal(t, 1, published)
	assert.Equal(t, 1, suppressed)

	// Changes of other entities are never caught by a token replay.
	var historyPublished int
	s.Subscribe(store.EntityHistory, func(entity store.Entity) {
		if !b.consumeReplay(entity) {
			historyPublished++
		}
	})
	s.Notify(store.EntityHistory)
	assert.Equal(t, 1, historyPublished)
}

func TestReplayOfUnknownEntityStillNotifies(t *testing.T) {
	s := store.NewMemoryStore()
	b := newBridge(nil, s)

	var notified int
	s.Subscribe(store.Entity("menus"), func(store.Entity) { notified++ })

	b.handle(remoteMsg(t, store.Entity("menus"), "other-instance"))
	assert.Equal(t, 1, notified)
}
