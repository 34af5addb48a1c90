// Package engine implements the token/queue state machine over an
// injected RecordStore: issuing numbered tokens, deriving queue views
// and positions, driving the order lifecycle, and aggregating stats.
package engine

import (
	"math"
	"sync"
	"time"

	"canteen-queue-api/store"
)

type Engine struct {
	store store.RecordStore
	now   func() time.Time

	// Serializes sequence-number assignment within this process. Two
	// processes sharing a store can still race; see DESIGN.md.
	issueMu sync.Mutex
}

// New wires an engine to its store. The clock defaults to time.Now.
func New(s store.RecordStore) *Engine {
	return &Engine{store: s, now: time.Now}
}

// NewWithClock lets tests pin the engine to a fake clock.
func NewWithClock(s store.RecordStore, now func() time.Time) *Engine {
	return &Engine{store: s, now: now}
}

// Store exposes the underlying record store for observers.
func (e *Engine) Store() store.RecordStore { return e.store }

// startOfToday is local midnight of the engine's current day. Every
// "today" scope in the engine derives from this cutoff.
func (e *Engine) startOfToday() time.Time {
	now := e.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func roundMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
