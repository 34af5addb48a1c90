package store

import "canteen-queue-api/models"

// Entity names the record collections held by a store.
type Entity string

const (
	EntityCanteens Entity = "canteens"
	EntityTokens   Entity = "tokens"
	EntityHistory  Entity = "history"
)

// OnChange is invoked after a collection changed. Delivery is best-effort:
// observers get no ordering guarantee and no acknowledgement path.
type OnChange func(entity Entity)

type CanteenRepository interface {
	All() ([]models.Canteen, error)
	ByID(id string) (*models.Canteen, error)
	Upsert(c *models.Canteen) error
}

type TokenRepository interface {
	All() ([]models.Token, error)
	ByID(id string) (*models.Token, error)
	Upsert(t *models.Token) error
}

// HistoryRepository is append-only: entries are never updated or deleted.
type HistoryRepository interface {
	All() ([]models.HistoryEntry, error)
	ByFoodItem(foodItem string) ([]models.HistoryEntry, error)
	Append(e *models.HistoryEntry) error
}

// RecordStore is the engine's only dependency on persistence. The local
// write is ground truth; any remote mirroring behind an implementation is
// best-effort and must never fail the caller.
type RecordStore interface {
	Canteens() CanteenRepository
	Tokens() TokenRepository
	History() HistoryRepository

	// Subscribe registers an observer for one collection.
	Subscribe(entity Entity, fn OnChange)
	// Notify broadcasts a change to all observers of the collection.
	Notify(entity Entity)
}
