package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	InsertMut(order *domain.Order) (*spanner.Mutation, error)

	// UpdateMut writes the dirty fields; nil when nothing changed.
	UpdateMut(order *domain.Order) *spanner.Mutation

	GetByIDWith(ctx context.Context, reader committer.RowReader, orderID string) (*domain.Order, error)
}
