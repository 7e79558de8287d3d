package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FieldOrderStatus is the change-tracking name of the status field.
const FieldOrderStatus = "status"

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipping  OrderStatus = "shipping"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// allowed transitions; delivered and cancelled are terminal
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:  {OrderShipping, OrderCancelled},
	OrderShipping: {OrderDelivered},
}

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderPending, OrderShipping, OrderDelivered, OrderCancelled:
		return st, nil
	}
	return "", ErrInvalidOrderStatus
}

// CanTransitionTo reports whether s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is a product line captured at checkout.
type OrderItem struct {
	ProductID    string
	ProductTitle string
	ProductImage string
	Price        decimal.Decimal
	Quantity     int64
}

// Subtotal is price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// Order is a placed order and its delivery contact.
type Order struct {
	id         string
	userID     string
	username   string
	phone      string
	address    string
	items      []OrderItem
	totalPrice decimal.Decimal
	status     OrderStatus
	createdAt  time.Time
	updatedAt  time.Time

	changes *ChangeTracker
	events  []DomainEvent
}

// NewOrder creates a pending order. The total is derived from the items.
func NewOrder(id, userID, username, phone, address string, items []OrderItem, now time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	total := decimal.Zero
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 || it.Price.IsNegative() {
			return nil, ErrInvalidOrderItem
		}
		total = total.Add(it.Subtotal())
	}

	return &Order{
		id:         id,
		userID:     userID,
		username:   username,
		phone:      phone,
		address:    address,
		items:      append([]OrderItem{}, items...),
		totalPrice: total,
		status:     OrderPending,
		createdAt:  now,
		updatedAt:  now,
		changes:    NewChangeTracker(),
	}, nil
}

// ReconstructOrder rebuilds an order loaded from storage.
func ReconstructOrder(
	id, userID, username, phone, address string,
	items []OrderItem,
	totalPrice decimal.Decimal,
	status OrderStatus,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:         id,
		userID:     userID,
		username:   username,
		phone:      phone,
		address:    address,
		items:      items,
		totalPrice: totalPrice,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		changes:    NewChangeTracker(),
	}
}

func (o *Order) ID() string                  { return o.id }
func (o *Order) UserID() string              { return o.userID }
func (o *Order) Username() string            { return o.username }
func (o *Order) Phone() string               { return o.phone }
func (o *Order) Address() string             { return o.address }
func (o *Order) Items() []OrderItem          { return append([]OrderItem{}, o.items...) }
func (o *Order) TotalPrice() decimal.Decimal { return o.totalPrice }
func (o *Order) Status() OrderStatus         { return o.status }
func (o *Order) CreatedAt() time.Time        { return o.createdAt }
func (o *Order) UpdatedAt() time.Time        { return o.updatedAt }
func (o *Order) Changes() *ChangeTracker     { return o.changes }
func (o *Order) DomainEvents() []DomainEvent { return o.events }

// ChangeStatus moves the order to next if the transition is allowed.
func (o *Order) ChangeStatus(next OrderStatus, now time.Time) error {
	if _, err := ParseOrderStatus(string(next)); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(next) {
		return ErrInvalidStatusTransition
	}

	previous := o.status
	o.status = next
	o.updatedAt = now
	o.changes.MarkDirty(FieldOrderStatus)
	o.events = append(o.events, &OrderStatusChangedEvent{
		OrderID:   o.id,
		UserID:    o.userID,
		From:      previous,
		To:        next,
		ChangedAt: now,
	})
	return nil
}
