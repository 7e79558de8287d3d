package list_products

import (
	"context"
	"fmt"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
)

// Request addresses one page of the catalog. At most one of Category,
// Keyword and Status may be set.
type Request struct {
	Category string
	Keyword  string
	Status   string
	Page     int
	PageSize int
}

// Filter converts the request's filter fields.
func (r *Request) Filter() (paging.Filter, error) {
	set := 0
	filter := paging.NoFilter()
	for _, f := range []paging.Filter{
		paging.CategoryFilter(r.Category),
		paging.KeywordFilter(r.Keyword),
		paging.StatusFilter(r.Status),
	} {
		if !f.IsNone() {
			filter = f
			set++
		}
	}
	if set > 1 {
		return paging.Filter{}, fmt.Errorf("%w: only one of category, keyword and status may be set", paging.ErrInvalidRequest)
	}
	return filter, nil
}

// Result is one page plus the figures shown next to page controls.
type Result struct {
	Products   []*domain.Product
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
	HasMore    bool
}

// Query serves stateless page requests.
type Query struct {
	fetcher paging.PageFetcher[*domain.Product]
}

// NewQuery creates a new list products query.
func NewQuery(fetcher paging.PageFetcher[*domain.Product]) *Query {
	return &Query{fetcher: fetcher}
}

// Execute fetches the requested page and the filter's total count. A failed
// fetch yields an empty page, never an error.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	filter, err := req.Filter()
	if err != nil {
		return nil, err
	}

	size := req.PageSize
	if size == 0 {
		size = paging.DefaultPageSize
	}
	pageReq := paging.PageRequest(filter, size, req.Page)
	if err := pageReq.Validate(); err != nil {
		return nil, err
	}

	page := q.fetcher.FetchPage(ctx, pageReq)
	items, hasMore := paging.Merge(nil, page.Items, paging.Replace, size)
	total := q.fetcher.TotalCount(ctx, filter)

	return &Result{
		Products:   items,
		Page:       req.Page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: paging.TotalPages(total, size),
		HasMore:    hasMore,
	}, nil
}
