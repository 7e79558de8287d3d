package m_notification

import (
	"cloud.google.com/go/spanner"
)

// Model builds mutations for the notifications table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut stores a new unread notification.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.NotificationID,
			data.UserID,
			data.Title,
			data.Message,
			data.OrderID,
			data.Kind,
			false,
			spanner.CommitTimestamp,
			spanner.NullTime{},
		},
	)
}

// MarkReadMut flags a notification as read at commit time.
func (m *Model) MarkReadMut(notificationID string) *spanner.Mutation {
	return spanner.Update(
		TableName,
		[]string{NotificationID, IsRead, ReadAt},
		[]interface{}{notificationID, true, spanner.CommitTimestamp},
	)
}

// DeleteMut removes a notification.
func (m *Model) DeleteMut(notificationID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{notificationID})
}
