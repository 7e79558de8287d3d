package m_notification

// Column names of the notifications table (in-app inbox).
const (
	TableName = "notifications"

	NotificationID = "notification_id"
	UserID         = "user_id"
	Title          = "title"
	Message        = "message"
	OrderID        = "order_id"
	Kind           = "kind"
	IsRead         = "is_read"
	CreatedAt      = "created_at"
	ReadAt         = "read_at"
)

// Columns lists every column in Data order.
var Columns = []string{
	NotificationID, UserID, Title, Message, OrderID, Kind, IsRead, CreatedAt, ReadAt,
}
