package contracts

import (
	"context"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
)

// ProductReader is the query side of the products collection.
//
// Scan orders by product_id for the empty and category filters and by
// (title, product_id) for keyword filters. Keyword filters are case-sensitive
// prefix matches on the title.
type ProductReader interface {
	paging.Source[*domain.Product]

	// ScanAt is Scan with native row skipping, for paging.SeekFetcher.
	ScanAt(ctx context.Context, filter paging.Filter, offset, limit int) ([]*domain.Product, error)

	GetByID(ctx context.Context, productID string) (*domain.Product, error)

	// ScanByPrefix returns every product whose field starts with prefix.
	// It backs the case-insensitive legacy search.
	ScanByPrefix(ctx context.Context, field, prefix string) ([]*domain.Product, error)

	// All returns the whole collection ordered by product_id.
	All(ctx context.Context) ([]*domain.Product, error)
}

// OrderReader is the query side of the orders collection,
// newest first. The status filter is the only supported filter.
type OrderReader interface {
	paging.Source[*domain.Order]

	ScanAt(ctx context.Context, filter paging.Filter, offset, limit int) ([]*domain.Order, error)

	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
}
