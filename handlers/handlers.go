package handlers

import (
	"canteen-queue-api/engine"
	"canteen-queue-api/insights"
	"canteen-queue-api/payments"
)

// Shared collaborators, wired once at startup.
var (
	Queue    *engine.Engine
	Insights *insights.Client
	Payments *payments.Client
)

// Init hands the handler layer its collaborators.
func Init(q *engine.Engine, ai *insights.Client, pay *payments.Client) {
	Queue = q
	Insights = ai
	Payments = pay
}
