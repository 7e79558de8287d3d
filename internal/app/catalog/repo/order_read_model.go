package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/models/m_order"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
	"github.com/light-bringer/shopcat-service/internal/pkg/query"
)

// OrderReadModel implements OrderReader for Spanner. Orders are listed
// newest first.
type OrderReadModel struct {
	client *spanner.Client
	repo   *OrderRepo
}

// NewOrderReadModel creates a new OrderReadModel.
func NewOrderReadModel(client *spanner.Client) contracts.OrderReader {
	return &OrderReadModel{client: client, repo: &OrderRepo{model: m_order.NewModel()}}
}

func (rm *OrderReadModel) filtered(filter paging.Filter) (*query.Builder, error) {
	b := query.From(m_order.TableName).Select(m_order.Columns...)

	switch filter.Kind {
	case paging.FilterNone:
	case paging.FilterStatus:
		if _, err := domain.ParseOrderStatus(filter.Value); err != nil {
			return nil, err
		}
		b = b.Where(query.Eq(m_order.Status, filter.Value))
	default:
		return nil, fmt.Errorf("unsupported order filter %s", filter.Kind)
	}

	return b.OrderBy(m_order.CreatedAt, query.Desc).OrderBy(m_order.OrderID, query.Asc), nil
}

// Scan returns up to limit orders matching filter, after the cursor if one is
// given.
func (rm *OrderReadModel) Scan(ctx context.Context, filter paging.Filter, limit int, after *paging.Cursor) ([]*domain.Order, error) {
	b, err := rm.filtered(filter)
	if err != nil {
		return nil, err
	}
	if after != nil {
		b = b.Where(query.After(m_order.CreatedAt, after.SortValue, m_order.OrderID, after.ID, query.Desc))
	}

	return rm.queryOrders(ctx, b.Limit(int64(limit)).Build(), limit)
}

// ScanAt returns up to limit orders matching filter, skipping the first offset
// rows.
func (rm *OrderReadModel) ScanAt(ctx context.Context, filter paging.Filter, offset, limit int) ([]*domain.Order, error) {
	b, err := rm.filtered(filter)
	if err != nil {
		return nil, err
	}
	return rm.queryOrders(ctx, b.Limit(int64(limit)).Offset(int64(offset)).Build(), limit)
}

func (rm *OrderReadModel) queryOrders(ctx context.Context, stmt spanner.Statement, limit int) ([]*domain.Order, error) {
	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	orders := make([]*domain.Order, 0, resultCapacity(limit))
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate orders: %w", err)
		}

		var data m_order.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse order: %w", err)
		}
		order, err := dataToOrder(&data)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// Count returns the number of orders matching filter.
func (rm *OrderReadModel) Count(ctx context.Context, filter paging.Filter) (int, error) {
	b, err := rm.filtered(filter)
	if err != nil {
		return 0, err
	}
	return countRows(ctx, rm.client, b.Count().Build())
}

// CursorOf returns the (created_at, order_id) key of o.
func (rm *OrderReadModel) CursorOf(_ paging.Filter, o *domain.Order) paging.Cursor {
	return paging.Cursor{SortValue: o.CreatedAt().UTC().Truncate(time.Microsecond), ID: o.ID()}
}

// GetByID retrieves an order by ID.
func (rm *OrderReadModel) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return rm.repo.GetByIDWith(ctx, rm.client.Single(), orderID)
}
