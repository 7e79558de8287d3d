package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/models/m_order"
	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
)

// OrderRepo implements OrderRepository for Spanner.
type OrderRepo struct {
	model *m_order.Model
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo() contracts.OrderRepository {
	return &OrderRepo{model: m_order.NewModel()}
}

// InsertMut creates a mutation for a new order.
func (r *OrderRepo) InsertMut(order *domain.Order) (*spanner.Mutation, error) {
	data := &m_order.Data{
		OrderID:  order.ID(),
		UserID:   order.UserID(),
		Username: order.Username(),
		Phone:    order.Phone(),
		Address:  order.Address(),
		Status:   string(order.Status()),
	}
	data.TotalPrice.Set(decimalToRat(order.TotalPrice()))
	return r.model.InsertMut(data, itemsToDocs(order.Items())), nil
}

// UpdateMut writes the order status when it changed.
func (r *OrderRepo) UpdateMut(order *domain.Order) *spanner.Mutation {
	if !order.Changes().Dirty(domain.FieldOrderStatus) {
		return nil
	}
	return r.model.StatusMut(order.ID(), string(order.Status()))
}

// GetByIDWith reads an order through reader.
func (r *OrderRepo) GetByIDWith(ctx context.Context, reader committer.RowReader, orderID string) (*domain.Order, error) {
	row, err := reader.ReadRow(ctx, m_order.TableName, spanner.Key{orderID}, m_order.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to read order: %w", err)
	}

	var data m_order.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse order: %w", err)
	}
	return dataToOrder(&data)
}
