package list_categories

import (
	"context"
	"fmt"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
)

// Query lists the distinct product categories.
type Query struct {
	reader contracts.ProductReader
}

// NewQuery creates a new list categories query.
func NewQuery(reader contracts.ProductReader) *Query {
	return &Query{reader: reader}
}

// Execute returns the categories in use, sorted.
func (q *Query) Execute(ctx context.Context) ([]string, error) {
	products, err := q.reader.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return domain.Categories(products), nil
}
