package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/models/m_notification"
	"github.com/light-bringer/shopcat-service/internal/pkg/query"
)

// NotificationRepo stores notifications in the in-app inbox. It implements
// both Notifier and Inbox.
type NotificationRepo struct {
	client *spanner.Client
	model  *m_notification.Model
}

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(client *spanner.Client) *NotificationRepo {
	return &NotificationRepo{
		client: client,
		model:  m_notification.NewModel(),
	}
}

var (
	_ contracts.Notifier = (*NotificationRepo)(nil)
	_ contracts.Inbox    = (*NotificationRepo)(nil)
)

// Notify stores n as an unread notification.
func (r *NotificationRepo) Notify(ctx context.Context, n contracts.Notification) error {
	data := &m_notification.Data{
		NotificationID: uuid.New().String(),
		UserID:         n.UserID,
		Title:          n.Title,
		Message:        n.Message,
		Kind:           n.Kind,
	}
	if n.OrderID != "" {
		data.OrderID = spanner.NullString{StringVal: n.OrderID, Valid: true}
	}

	if _, err := r.client.Apply(ctx, []*spanner.Mutation{r.model.InsertMut(data)}); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}

// ListForUser returns the newest notifications of a user.
func (r *NotificationRepo) ListForUser(ctx context.Context, userID string, limit int) ([]*contracts.InboxItem, error) {
	stmt := query.From(m_notification.TableName).
		Select(m_notification.Columns...).
		Where(query.Eq(m_notification.UserID, userID)).
		OrderBy(m_notification.CreatedAt, query.Desc).
		Limit(int64(limit)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	items := make([]*contracts.InboxItem, 0, resultCapacity(limit))
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate notifications: %w", err)
		}

		var data m_notification.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse notification: %w", err)
		}
		items = append(items, &contracts.InboxItem{
			NotificationID: data.NotificationID,
			UserID:         data.UserID,
			Title:          data.Title,
			Message:        data.Message,
			OrderID:        data.OrderID.StringVal,
			Kind:           data.Kind,
			IsRead:         data.IsRead,
			CreatedAt:      data.CreatedAt,
		})
	}
	return items, nil
}

// MarkRead flags a notification of userID as read.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, notificationID string) error {
	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, m_notification.TableName, spanner.Key{notificationID}, []string{m_notification.UserID})
		if err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return contracts.ErrNotificationNotFound
			}
			return err
		}
		var owner string
		if err := row.Column(0, &owner); err != nil {
			return err
		}
		if owner != userID {
			return contracts.ErrNotificationNotFound
		}
		return txn.BufferWrite([]*spanner.Mutation{r.model.MarkReadMut(notificationID)})
	})
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// Expired selects the ids of read notifications read before readCutoff and
// unread notifications created before unreadCutoff.
func (r *NotificationRepo) Expired(ctx context.Context, readCutoff, unreadCutoff time.Time) ([]string, error) {
	read := query.From(m_notification.TableName).
		Select(m_notification.NotificationID).
		Where(query.Eq(m_notification.IsRead, true)).
		Where(query.Lte(m_notification.ReadAt, readCutoff))
	unread := query.From(m_notification.TableName).
		Select(m_notification.NotificationID).
		Where(query.Eq(m_notification.IsRead, false)).
		Where(query.Lte(m_notification.CreatedAt, unreadCutoff))

	var ids []string
	for _, b := range []*query.Builder{read, unread} {
		found, err := r.queryIDs(ctx, b.Build())
		if err != nil {
			return nil, err
		}
		ids = append(ids, found...)
	}
	return ids, nil
}

// Delete removes notifications in batches of batchSize mutations.
func (r *NotificationRepo) Delete(ctx context.Context, ids []string, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 500
	}

	deleted := 0
	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))
		muts := make([]*spanner.Mutation, 0, end-start)
		for _, id := range ids[start:end] {
			muts = append(muts, r.model.DeleteMut(id))
		}
		if _, err := r.client.Apply(ctx, muts); err != nil {
			return deleted, fmt.Errorf("failed to delete notifications: %w", err)
		}
		deleted += len(muts)
	}
	return deleted, nil
}

func (r *NotificationRepo) queryIDs(ctx context.Context, stmt spanner.Statement) ([]string, error) {
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var ids []string
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return ids, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query notifications: %w", err)
		}
		var id string
		if err := row.Column(0, &id); err != nil {
			return nil, fmt.Errorf("failed to parse notification id: %w", err)
		}
		ids = append(ids, id)
	}
}
