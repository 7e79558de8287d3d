package domain

import (
	"fmt"
	"time"
)

// DomainEvent is implemented by events recorded on aggregates.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// OrderStatusChangedEvent is recorded when an order moves between statuses.
// The order owner is notified about it after the change is committed.
type OrderStatusChangedEvent struct {
	OrderID   string
	UserID    string
	From      OrderStatus
	To        OrderStatus
	ChangedAt time.Time
}

func (e *OrderStatusChangedEvent) EventType() string {
	return "order.status_changed"
}

func (e *OrderStatusChangedEvent) AggregateID() string {
	return e.OrderID
}

// Title is the notification headline shown to the customer.
func (e *OrderStatusChangedEvent) Title() string {
	return "Order Status Updated"
}

// Message is the notification body shown to the customer.
func (e *OrderStatusChangedEvent) Message() string {
	return fmt.Sprintf("Your order #%s is currently %s!", e.OrderID, e.To)
}
