package get_product

import (
	"context"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
)

// Request contains the product ID to retrieve.
type Request struct {
	ProductID string
}

// Result is a product with its review summary.
type Result struct {
	Product *domain.Product
	Rating  domain.Rating
}

// Query handles the get product query use case.
type Query struct {
	reader contracts.ProductReader
}

// NewQuery creates a new get product query.
func NewQuery(reader contracts.ProductReader) *Query {
	return &Query{reader: reader}
}

// Execute retrieves a product by ID. The rating is recomputed from the
// embedded reviews on every read.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	product, err := q.reader.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	return &Result{Product: product, Rating: product.Rating()}, nil
}
