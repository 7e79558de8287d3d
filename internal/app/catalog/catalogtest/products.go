package catalogtest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
)

// Products is an in-memory products table. It implements both
// ProductReader and ProductRepository.
type Products struct {
	ledger *Ledger

	mu       sync.Mutex
	rows     map[string]*domain.Product
	scans    int
	failScan error
}

var (
	_ contracts.ProductReader     = (*Products)(nil)
	_ contracts.ProductRepository = (*Products)(nil)
)

// NewProducts creates an empty table bound to ledger.
func NewProducts(ledger *Ledger) *Products {
	return &Products{ledger: ledger, rows: make(map[string]*domain.Product)}
}

// Seed stores products directly, bypassing the ledger.
func (s *Products) Seed(products ...*domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.rows[p.ID()] = snapshot(p)
	}
}

// FailScans makes every read return err until called with nil.
func (s *Products) FailScans(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failScan = err
}

// Scans returns the number of Scan calls so far.
func (s *Products) Scans() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scans
}

// Len returns the number of stored products.
func (s *Products) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// snapshot copies p with a clean change tracker, as a reload would.
func snapshot(p *domain.Product) *domain.Product {
	return domain.ReconstructProduct(p.ID(), p.Details(), p.Status(), p.Reviews(), p.CreatedAt(), p.UpdatedAt())
}

func matches(filter paging.Filter, p *domain.Product) bool {
	switch filter.Kind {
	case paging.FilterCategory:
		return p.Category() == filter.Value
	case paging.FilterStatus:
		return string(p.Status()) == filter.Value
	case paging.FilterKeyword:
		return strings.HasPrefix(p.Title(), filter.Value)
	default:
		return true
	}
}

func (s *Products) sorted(filter paging.Filter) []*domain.Product {
	out := make([]*domain.Product, 0, len(s.rows))
	for _, p := range s.rows {
		if matches(filter, p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.Kind == paging.FilterKeyword && out[i].Title() != out[j].Title() {
			return out[i].Title() < out[j].Title()
		}
		return out[i].ID() < out[j].ID()
	})
	return out
}

func (s *Products) after(filter paging.Filter, p *domain.Product, c *paging.Cursor) bool {
	if filter.Kind == paging.FilterKeyword {
		title, _ := c.SortValue.(string)
		return p.Title() > title || (p.Title() == title && p.ID() > c.ID)
	}
	return p.ID() > c.ID
}

// Scan implements paging.Source.
func (s *Products) Scan(_ context.Context, filter paging.Filter, limit int, after *paging.Cursor) ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans++
	if s.failScan != nil {
		return nil, s.failScan
	}

	out := make([]*domain.Product, 0, limit)
	for _, p := range s.sorted(filter) {
		if after != nil && !s.after(filter, p, after) {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, snapshot(p))
	}
	return out, nil
}

// ScanAt implements paging.Seeker.
func (s *Products) ScanAt(_ context.Context, filter paging.Filter, offset, limit int) ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans++
	if s.failScan != nil {
		return nil, s.failScan
	}

	all := s.sorted(filter)
	out := make([]*domain.Product, 0, limit)
	for i := offset; i < len(all) && len(out) < limit; i++ {
		out = append(out, snapshot(all[i]))
	}
	return out, nil
}

// Count implements paging.Source.
func (s *Products) Count(_ context.Context, filter paging.Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failScan != nil {
		return 0, s.failScan
	}
	return len(s.sorted(filter)), nil
}

// CursorOf implements paging.Source.
func (s *Products) CursorOf(filter paging.Filter, p *domain.Product) paging.Cursor {
	if filter.Kind == paging.FilterKeyword {
		return paging.Cursor{SortValue: p.Title(), ID: p.ID()}
	}
	return paging.Cursor{SortValue: p.ID(), ID: p.ID()}
}

// GetByID returns a fresh copy of a stored product.
func (s *Products) GetByID(_ context.Context, productID string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failScan != nil {
		return nil, s.failScan
	}
	p, ok := s.rows[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return snapshot(p), nil
}

// GetByIDWith ignores reader.
func (s *Products) GetByIDWith(ctx context.Context, _ committer.RowReader, productID string) (*domain.Product, error) {
	return s.GetByID(ctx, productID)
}

// Exists reports whether productID is stored.
func (s *Products) Exists(_ context.Context, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[productID]
	return ok, nil
}

// ScanByPrefix matches field values case-sensitively, like the database.
func (s *Products) ScanByPrefix(_ context.Context, field, prefix string) ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failScan != nil {
		return nil, s.failScan
	}
	var out []*domain.Product
	for _, p := range s.sorted(paging.NoFilter()) {
		if strings.HasPrefix(p.SearchValue(field), prefix) {
			out = append(out, snapshot(p))
		}
	}
	return out, nil
}

// All returns every product ordered by id.
func (s *Products) All(_ context.Context) ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failScan != nil {
		return nil, s.failScan
	}
	out := make([]*domain.Product, 0, len(s.rows))
	for _, p := range s.sorted(paging.NoFilter()) {
		out = append(out, snapshot(p))
	}
	return out, nil
}

// InsertMut registers the insert of product.
func (s *Products) InsertMut(product *domain.Product) (*spanner.Mutation, error) {
	row := snapshot(product)
	mut := spanner.Insert("products", []string{"product_id"}, []interface{}{product.ID()})
	return s.ledger.register(mut, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.rows[row.ID()] = row
	}), nil
}

// UpdateMut registers the update of product, or returns nil when it is clean.
func (s *Products) UpdateMut(product *domain.Product) (*spanner.Mutation, error) {
	if !product.Changes().HasChanges() {
		return nil, nil
	}
	row := snapshot(product)
	mut := spanner.Update("products", []string{"product_id"}, []interface{}{product.ID()})
	return s.ledger.register(mut, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.rows[row.ID()] = row
	}), nil
}

// DeleteMut registers the removal of productID.
func (s *Products) DeleteMut(productID string) *spanner.Mutation {
	mut := spanner.Delete("products", spanner.Key{productID})
	return s.ledger.register(mut, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.rows, productID)
	})
}

// MustProduct builds a valid product for tests.
func MustProduct(id, title, category string, price int64) *domain.Product {
	p, err := domain.NewProduct(id, domain.ProductDetails{
		Title:    title,
		Category: category,
		Price:    decimalFromInt(price),
	}, fixedTime)
	if err != nil {
		panic(fmt.Sprintf("invalid test product %s: %v", id, err))
	}
	return p
}
