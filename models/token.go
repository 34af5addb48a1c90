package models

import "time"

// OrderStatus represents all possible states of a queue token
type OrderStatus string

const (
	StatusWaiting   OrderStatus = "WAITING"
	StatusReady     OrderStatus = "READY"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// QueueType distinguishes the physical campus queue from the prepaid online one
type QueueType string

const (
	QueueCampus QueueType = "CAMPUS"
	QueueOnline QueueType = "ONLINE"
)

// PaymentStatus of an online order's payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// Token is one queue ticket: a single food order waiting at a canteen counter.
type Token struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	CanteenID   string      `json:"canteen_id" gorm:"not null;index"`
	CouponCode  string      `json:"coupon_code"` // empty for online orders
	TokenNumber string      `json:"token_number" gorm:"not null"`
	FoodItem    string      `json:"food_item" gorm:"not null"`
	Status      OrderStatus `json:"status" gorm:"not null;default:'WAITING'"`
	QueueType   QueueType   `json:"queue_type" gorm:"not null"`
	Timestamp   time.Time   `json:"timestamp"`

	EstimatedWaitTimeMinutes int        `json:"estimated_wait_time_minutes"`
	CompletedAt              *time.Time `json:"completed_at,omitempty"`
	AIReasoning              string     `json:"ai_reasoning,omitempty"`

	// Online payment fields — set only for QueueOnline tokens
	PaymentID     string        `json:"payment_id,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status,omitempty"`
	UserEmail     string        `json:"user_email,omitempty"`
	UserPhone     string        `json:"user_phone,omitempty"`
}

// IsActive reports whether the token still occupies a queue slot.
func (t *Token) IsActive() bool {
	return t.Status == StatusWaiting || t.Status == StatusReady
}

// HistoryEntry is an immutable fact recorded when an order completes,
// used as aggregate input for future wait-time estimation.
type HistoryEntry struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	FoodItem        string    `json:"food_item" gorm:"not null;index"`
	PrepTimeMinutes int       `json:"prep_time_minutes"`
	Hour            int       `json:"hour"` // hour-of-day the order was placed
	Timestamp       time.Time `json:"timestamp"`
}

// QueueStats is derived on demand and never persisted.
type QueueStats struct {
	TotalOrdersToday  int    `json:"totalOrdersToday"`
	AverageWaitTime   int    `json:"averageWaitTime"` // minutes
	PeakHour          string `json:"peakHour"`
	ActiveQueueLength int    `json:"activeQueueLength"`
}

// HourlyTraffic is one bucket of today's traffic histogram.
type HourlyTraffic struct {
	Name   string `json:"name"` // e.g. "9 AM", "12 PM"
	Orders int    `json:"orders"`
}

// FoodSummary aggregates today's completed orders per menu item.
type FoodSummary struct {
	FoodItem      string `json:"food_item"`
	Count         int    `json:"count"`
	TotalPrepTime int    `json:"total_prep_time"` // minutes
}
