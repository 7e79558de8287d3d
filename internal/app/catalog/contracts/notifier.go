package contracts

import (
	"context"
	"errors"
	"time"
)

// ErrNotificationNotFound is returned when a notification does not exist or
// belongs to another user.
var ErrNotificationNotFound = errors.New("notification not found")

// KindOrderStatusUpdate marks notifications about order status changes.
const KindOrderStatusUpdate = "ORDER_STATUS_UPDATE"

// Notification is a message for one user.
type Notification struct {
	UserID  string
	Title   string
	Message string
	OrderID string
	Kind    string
}

// Notifier delivers notifications. Callers fire and forget: failures are
// logged by the caller and never retried.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// InboxItem is a stored notification.
type InboxItem struct {
	NotificationID string
	UserID         string
	Title          string
	Message        string
	OrderID        string
	Kind           string
	IsRead         bool
	CreatedAt      time.Time
}

// Inbox lists and acknowledges stored notifications.
type Inbox interface {
	ListForUser(ctx context.Context, userID string, limit int) ([]*InboxItem, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
}

// SessionProvider supplies the authenticated user of a request.
type SessionProvider interface {
	CurrentUserID(ctx context.Context) (string, error)
}
