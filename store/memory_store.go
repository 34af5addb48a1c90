package store

import (
	"sync"

	"canteen-queue-api/models"
)

// MemoryStore keeps all records in process memory, preserving insertion
// order. It backs engine tests and database-less demo runs.
type MemoryStore struct {
	mu       sync.RWMutex
	canteens []models.Canteen
	tokens   []models.Token
	history  []models.HistoryEntry
	*notifier
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{notifier: newNotifier()}
}

func (s *MemoryStore) Canteens() CanteenRepository { return memCanteens{s} }
func (s *MemoryStore) Tokens() TokenRepository     { return memTokens{s} }
func (s *MemoryStore) History() HistoryRepository  { return memHistory{s} }

type memCanteens struct{ s *MemoryStore }

func (r memCanteens) All() ([]models.Canteen, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Canteen, len(r.s.canteens))
	copy(out, r.s.canteens)
	return out, nil
}

func (r memCanteens) ByID(id string) (*models.Canteen, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.canteens {
		if c.ID == id {
			canteen := c
			return &canteen, nil
		}
	}
	return nil, nil
}

func (r memCanteens) Upsert(c *models.Canteen) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.canteens {
		if r.s.canteens[i].ID == c.ID {
			r.s.canteens[i] = *c
			return nil
		}
	}
	r.s.canteens = append(r.s.canteens, *c)
	return nil
}

type memTokens struct{ s *MemoryStore }

func (r memTokens) All() ([]models.Token, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Token, len(r.s.tokens))
	copy(out, r.s.tokens)
	return out, nil
}

func (r memTokens) ByID(id string) (*models.Token, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.tokens {
		if t.ID == id {
			token := t
			return &token, nil
		}
	}
	return nil, nil
}

func (r memTokens) Upsert(t *models.Token) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.tokens {
		if r.s.tokens[i].ID == t.ID {
			r.s.tokens[i] = *t
			return nil
		}
	}
	r.s.tokens = append(r.s.tokens, *t)
	return nil
}

type memHistory struct{ s *MemoryStore }

func (r memHistory) All() ([]models.HistoryEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.HistoryEntry, len(r.s.history))
	copy(out, r.s.history)
	return out, nil
}

func (r memHistory) ByFoodItem(foodItem string) ([]models.HistoryEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.HistoryEntry
	for _, e := range r.s.history {
		if e.FoodItem == foodItem {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r memHistory) Append(e *models.HistoryEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.history = append(r.s.history, *e)
	return nil
}
