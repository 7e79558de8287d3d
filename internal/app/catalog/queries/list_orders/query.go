package list_orders

import (
	"context"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
)

// Request addresses one page of orders, optionally of one status.
type Request struct {
	Status   string
	Page     int
	PageSize int
}

// Result is one page of orders, newest first.
type Result struct {
	Orders     []*domain.Order
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
	HasMore    bool
}

// Query serves stateless order pages.
type Query struct {
	fetcher paging.PageFetcher[*domain.Order]
}

// NewQuery creates a new list orders query.
func NewQuery(fetcher paging.PageFetcher[*domain.Order]) *Query {
	return &Query{fetcher: fetcher}
}

// Execute fetches the requested page.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	filter := paging.StatusFilter(req.Status)
	if !filter.IsNone() {
		if _, err := domain.ParseOrderStatus(filter.Value); err != nil {
			return nil, err
		}
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
		Orders:     items,
		Page:       req.Page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: paging.TotalPages(total, size),
		HasMore:    hasMore,
	}, nil
}
