// Package events mirrors store change notifications across engine
// instances through NATS, so a staff terminal and an admin terminal
// sharing a store re-render on each other's writes.
package events

import (
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"canteen-queue-api/store"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const subjectPrefix = "smartqueue.changes."

var bridgedEntities = []store.Entity{store.EntityCanteens, store.EntityTokens, store.EntityHistory}

type changeEvent struct {
	Entity string    `json:"entity"`
	Origin string    `json:"origin"`
	At     time.Time `json:"at"`
}

// Bridge publishes every local change and replays remote ones into the
// local notifier. Delivery is fire-and-forget both ways: a publish
// failure is logged and dropped, never retried.
type Bridge struct {
	nc     *nats.Conn
	store  store.RecordStore
	origin string
	sub    *nats.Subscription

	// One suppression slot per replayed delivery, per entity. A replay
	// re-fires the local notifier, which would reach publish and bounce
	// the event back out under our own origin; the slot absorbs exactly
	// that one publish, so a concurrent local change still goes out.
	pending map[store.Entity]*atomic.Int32
}

func newBridge(nc *nats.Conn, s store.RecordStore) *Bridge {
	b := &Bridge{
		nc:      nc,
		store:   s,
		origin:  uuid.NewString(),
		pending: make(map[store.Entity]*atomic.Int32, len(bridgedEntities)),
	}
	for _, entity := range bridgedEntities {
		b.pending[entity] = new(atomic.Int32)
	}
	return b
}

// Connect dials NATS and wires the bridge to the store's notifier.
func Connect(url string, s store.RecordStore) (*Bridge, error) {
	nc, err := nats.Connect(url, nats.Name("smartqueue"))
	if err != nil {
		return nil, err
	}

	b := newBridge(nc, s)
	for _, entity := range bridgedEntities {
		s.Subscribe(entity, b.publish)
	}

	sub, err := nc.Subscribe(subjectPrefix+"*", b.handle)
	if err != nil {
		nc.Close()
		return nil, err
	}
	b.sub = sub
	return b, nil
}

func (b *Bridge) publish(entity store.Entity) {
	if b.consumeReplay(entity) {
		return
	}
	data, err := json.Marshal(changeEvent{
		Entity: string(entity),
		Origin: b.origin,
		At:     time.Now(),
	})
	if err != nil {
		return
	}
	if err := b.nc.Publish(subjectPrefix+string(entity), data); err != nil {
		log.Printf("events: publish %s failed: %v", entity, err)
	}
}

func (b *Bridge) handle(msg *nats.Msg) {
	var evt changeEvent
	if err := json.Unmarshal(msg.Data, &evt); err != nil {
		log.Printf("events: bad change event: %v", err)
		return
	}
	if evt.Origin == b.origin {
		return
	}

	entity := store.Entity(evt.Entity)
	slot, tracked := b.pending[entity]
	if tracked {
		slot.Add(1)
	}
	b.store.Notify(entity)
	if tracked {
		// The notifier fan-out is synchronous, so our own publish has
		// already claimed the slot; drop it if nothing did.
		b.consumeReplay(entity)
	}
}

// consumeReplay claims one pending replay slot for the entity.
func (b *Bridge) consumeReplay(entity store.Entity) bool {
	slot, ok := b.pending[entity]
	if !ok {
		return false
	}
	for {
		n := slot.Load()
		if n <= 0 {
			return false
		}
		if slot.CompareAndSwap(n, n-1) {
			return true
		}
	}
}

// Close drains the subscription and drops the connection.
func (b *Bridge) Close() {
	if b.sub != nil {
		_ = b.sub.Unsubscribe()
	}
	b.nc.Close()
}
