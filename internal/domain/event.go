package domain

import "time"

type EventType string

const (
	EventCreated       EventType = "created"
	EventStatusChanged EventType = "status_changed"
	EventDeleted       EventType = "deleted"
)

// OrderEvent is published after a successful mutation.
type OrderEvent struct {
	Type    EventType `json:"type"`
	OrderID string    `json:"orderId"`
	UserID  string    `json:"userId"`
	Status  Status    `json:"status,omitempty"`
	At      time.Time `json:"at"`
}
