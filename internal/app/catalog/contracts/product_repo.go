package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
)

// ProductRepository persists product aggregates.
// Repositories return mutations, they don't apply them.
type ProductRepository interface {
	// InsertMut creates a mutation for a new product row.
	InsertMut(product *domain.Product) (*spanner.Mutation, error)

	// UpdateMut writes only the dirty fields; nil when nothing changed.
	UpdateMut(product *domain.Product) (*spanner.Mutation, error)

	DeleteMut(productID string) *spanner.Mutation

	// GetByID loads a product with its reviews.
	GetByID(ctx context.Context, productID string) (*domain.Product, error)

	// GetByIDWith loads a product through reader, typically a read-write
	// transaction that will also write the change.
	GetByIDWith(ctx context.Context, reader committer.RowReader, productID string) (*domain.Product, error)

	Exists(ctx context.Context, productID string) (bool, error)
}
