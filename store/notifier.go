package store

import "sync"

// notifier is a callback registry shared by the store implementations.
// Fan-out is synchronous and fire-and-forget: a subscriber that blocks
// delays later ones, so observers are expected to hand off quickly.
type notifier struct {
	mu   sync.RWMutex
	subs map[Entity][]OnChange
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[Entity][]OnChange)}
}

func (n *notifier) Subscribe(entity Entity, fn OnChange) {
	if fn == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs[entity] = append(n.subs[entity], fn)
}

func (n *notifier) Notify(entity Entity) {
	n.mu.RLock()
	fns := make([]OnChange, len(n.subs[entity]))
	copy(fns, n.subs[entity])
	n.mu.RUnlock()

	for _, fn := range fns {
		fn(entity)
	}
}
