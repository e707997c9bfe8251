package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types published to the order events queue.
const (
	EventCreated   = "order.created"
	EventPaid      = "order.paid"
	EventCancelled = "order.cancelled"
	EventStatus    = "order.status_changed"
)

// Event is the envelope published to SQS on order lifecycle changes.
type Event struct {
	Type        string          `json:"type"`
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Status      Status          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// NewEvent builds an event snapshot for o.
func NewEvent(eventType string, o *Order) Event {
	return Event{
		Type:        eventType,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		Total:       o.Total,
		OccurredAt:  time.Now().UTC(),
	}
}
