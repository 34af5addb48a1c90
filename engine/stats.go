package engine

import (
	"fmt"
	"sort"
	"time"

	"canteen-queue-api/models"
)

// peakHourPlaceholder is reported as-is rather than computed; the admin
// dashboard has always shown the lunch rush window.
const peakHourPlaceholder = "12:00 PM - 1:00 PM"

// Stats derives the same-day summary for one canteen. The average wait
// deliberately spans ALL completed tokens, not just today's; see the
// open-question record in DESIGN.md before "fixing" that.
func (e *Engine) Stats(canteenID string) (*models.QueueStats, error) {
	tokens, err := e.store.Tokens().All()
	if err != nil {
		return nil, err
	}

	today := e.startOfToday()
	var totalToday, waiting, completed int
	var totalWait time.Duration

	for _, t := range tokens {
		if t.CanteenID != canteenID {
			continue
		}
		if !t.Timestamp.Before(today) {
			totalToday++
		}
		switch {
		case t.Status == models.StatusWaiting:
			waiting++
		case t.Status == models.StatusCompleted && t.CompletedAt != nil:
			completed++
			totalWait += t.CompletedAt.Sub(t.Timestamp)
		}
	}

	averageWait := 0
	if completed > 0 {
		averageWait = roundMinutes(totalWait / time.Duration(completed))
	}

	return &models.QueueStats{
		TotalOrdersToday:  totalToday,
		AverageWaitTime:   averageWait,
		PeakHour:          peakHourPlaceholder,
		ActiveQueueLength: waiting,
	}, nil
}

// HourlyTraffic buckets today's tokens by hour of creation. Hours 9–18
// are always present so the chart keeps a stable x-axis; hours outside
// that band appear only when they saw traffic.
func (e *Engine) HourlyTraffic(canteenID string) ([]models.HourlyTraffic, error) {
	tokens, err := e.store.Tokens().All()
	if err != nil {
		return nil, err
	}

	today := e.startOfToday()
	counts := make(map[int]int)
	for _, t := range tokens {
		if t.CanteenID != canteenID || t.Timestamp.Before(today) {
			continue
		}
		counts[t.Timestamp.Hour()]++
	}

	hours := []int{9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	present := make(map[int]bool)
	for _, h := range hours {
		present[h] = true
	}
	for h := range counts {
		if !present[h] {
			hours = append(hours, h)
			present[h] = true
		}
	}
	sort.Ints(hours)

	traffic := make([]models.HourlyTraffic, 0, len(hours))
	for _, h := range hours {
		traffic = append(traffic, models.HourlyTraffic{
			Name:   hourLabel(h),
			Orders: counts[h],
		})
	}
	return traffic, nil
}

func hourLabel(h int) string {
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d %s", display, ampm)
}

// TodaysOrderSummary groups today's COMPLETED tokens by food item,
// most-ordered first. Ties keep the order in which items first appeared.
func (e *Engine) TodaysOrderSummary(canteenID string) ([]models.FoodSummary, error) {
	tokens, err := e.store.Tokens().All()
	if err != nil {
		return nil, err
	}

	today := e.startOfToday()
	type bucket struct {
		count    int
		prepTime time.Duration
	}
	buckets := make(map[string]*bucket)
	var order []string

	for _, t := range tokens {
		if t.CanteenID != canteenID || t.Timestamp.Before(today) || t.Status != models.StatusCompleted {
			continue
		}
		b, ok := buckets[t.FoodItem]
		if !ok {
			b = &bucket{}
			buckets[t.FoodItem] = b
			order = append(order, t.FoodItem)
		}
		b.count++
		if t.CompletedAt != nil {
			b.prepTime += t.CompletedAt.Sub(t.Timestamp)
		}
	}

	summary := make([]models.FoodSummary, 0, len(order))
	for _, item := range order {
		b := buckets[item]
		summary = append(summary, models.FoodSummary{
			FoodItem:      item,
			Count:         b.count,
			TotalPrepTime: roundMinutes(b.prepTime),
		})
	}
	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].Count > summary[j].Count
	})
	return summary, nil
}

// HistoryForFood returns every recorded completion of one menu item.
func (e *Engine) HistoryForFood(foodItem string) ([]models.HistoryEntry, error) {
	return e.store.History().ByFoodItem(foodItem)
}

// AllHistory returns the full completion log.
func (e *Engine) AllHistory() ([]models.HistoryEntry, error) {
	return e.store.History().All()
}
