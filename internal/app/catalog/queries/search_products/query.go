package search_products

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
)

// Request is a keyword search narrowed by the search screen's criteria.
type Request struct {
	Keyword  string
	Criteria domain.SearchCriteria
}

// Query runs the case-insensitive legacy search.
type Query struct {
	reader contracts.ProductReader
}

// NewQuery creates a new search products query.
func NewQuery(reader contracts.ProductReader) *Query {
	return &Query{reader: reader}
}

// Execute returns the products matching the keyword and criteria.
//
// For every searchable field, candidates are the products whose value starts
// with the keyword's first character in either case; a candidate matches when
// the field contains the keyword ignoring case. Products are reported once, in
// the order first found. A blank keyword searches the whole catalog.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*domain.Product, error) {
	keyword := strings.TrimSpace(req.Keyword)

	var found []*domain.Product
	if keyword == "" {
		all, err := q.reader.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load products: %w", err)
		}
		found = all
	} else {
		for _, field := range domain.LegacySearchFields {
			for _, bucket := range domain.FirstCharBuckets(keyword) {
				candidates, err := q.reader.ScanByPrefix(ctx, field, bucket)
				if err != nil {
					return nil, fmt.Errorf("failed to search %s: %w", field, err)
				}
				for _, p := range candidates {
					if domain.MatchesContains(p.SearchValue(field), keyword) {
						found = append(found, p)
					}
				}
			}
		}
		found = lo.UniqBy(found, func(p *domain.Product) string { return p.ID() })
	}

	return req.Criteria.Apply(found), nil
}
