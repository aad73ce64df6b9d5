package domain

import "time"

type OrderCreatedEvent struct {
	EventType string    `json:"event_type"`
	Order     Order     `json:"order"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventOrderCreated   = "order.created"
	EventOrderCompleted = "order.completed"
	EventOrderCancelled = "order.cancelled"
)
