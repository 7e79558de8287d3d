package m_notification

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data is one row of the notifications table.
type Data struct {
	NotificationID string             `spanner:"notification_id"`
	UserID         string             `spanner:"user_id"`
	Title          string             `spanner:"title"`
	Message        string             `spanner:"message"`
	OrderID        spanner.NullString `spanner:"order_id"`
	Kind           string             `spanner:"kind"`
	IsRead         bool               `spanner:"is_read"`
	CreatedAt      time.Time          `spanner:"created_at"`
	ReadAt         spanner.NullTime   `spanner:"read_at"`
}
