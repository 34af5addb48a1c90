package store

import (
	"errors"

	"canteen-queue-api/models"

	"gorm.io/gorm"
)

// GormStore is the durable RecordStore backed by the SQLite database.
// After every successful local write it fires an opportunistic mirror
// write in the background; the local result is what the caller sees.
type GormStore struct {
	db     *gorm.DB
	mirror *RedisMirror
	*notifier
}

func NewGormStore(db *gorm.DB, mirror *RedisMirror) *GormStore {
	return &GormStore{db: db, mirror: mirror, notifier: newNotifier()}
}

func (s *GormStore) Canteens() CanteenRepository { return gormCanteens{s} }
func (s *GormStore) Tokens() TokenRepository     { return gormTokens{s} }
func (s *GormStore) History() HistoryRepository  { return gormHistory{s} }

func (s *GormStore) mirrorWrite(entity Entity, id string, record interface{}) {
	if s.mirror == nil {
		return
	}
	go s.mirror.Write(entity, id, record)
}

type gormCanteens struct{ s *GormStore }

func (r gormCanteens) All() ([]models.Canteen, error) {
	var canteens []models.Canteen
	err := r.s.db.Find(&canteens).Error
	return canteens, err
}

func (r gormCanteens) ByID(id string) (*models.Canteen, error) {
	var canteen models.Canteen
	err := r.s.db.First(&canteen, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &canteen, nil
}

func (r gormCanteens) Upsert(c *models.Canteen) error {
	if err := r.s.db.Save(c).Error; err != nil {
		return err
	}
	r.s.mirrorWrite(EntityCanteens, c.ID, c)
	return nil
}

type gormTokens struct{ s *GormStore }

func (r gormTokens) All() ([]models.Token, error) {
	var tokens []models.Token
	err := r.s.db.Order("timestamp asc").Find(&tokens).Error
	return tokens, err
}

func (r gormTokens) ByID(id string) (*models.Token, error) {
	var token models.Token
	err := r.s.db.First(&token, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r gormTokens) Upsert(t *models.Token) error {
	if err := r.s.db.Save(t).Error; err != nil {
		return err
	}
	r.s.mirrorWrite(EntityTokens, t.ID, t)
	return nil
}

type gormHistory struct{ s *GormStore }

func (r gormHistory) All() ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	err := r.s.db.Order("timestamp asc").Find(&entries).Error
	return entries, err
}

func (r gormHistory) ByFoodItem(foodItem string) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	err := r.s.db.Where("food_item = ?", foodItem).Order("timestamp asc").Find(&entries).Error
	return entries, err
}

func (r gormHistory) Append(e *models.HistoryEntry) error {
	if err := r.s.db.Create(e).Error; err != nil {
		return err
	}
	r.s.mirrorWrite(EntityHistory, e.ID, e)
	return nil
}
