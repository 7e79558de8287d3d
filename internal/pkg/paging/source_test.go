package paging

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type item struct {
	ID       string
	Category string
	Title    string
}

func makeItems(n int, category string) []item {
	items := make([]item, n)
	for i := range items {
		items[i] = item{
			ID:       fmt.Sprintf("p-%03d", i),
			Category: category,
			Title:    fmt.Sprintf("Item %03d", i),
		}
	}
	return items
}

// memSource is an in-memory cursor-only collection ordered by ID.
type memSource struct {
	mu       sync.Mutex
	items    []item
	scanErr  error
	countErr error
	scans    []scanCall
}

type scanCall struct {
	limit int
	after *Cursor
}

func newMemSource(items ...item) *memSource {
	sorted := append([]item(nil), items...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &memSource{items: sorted}
}

func (s *memSource) matching(filter Filter) []item {
	var out []item
	for _, it := range s.items {
		switch filter.Kind {
		case FilterCategory:
			if it.Category != filter.Value {
				continue
			}
		case FilterKeyword:
			if !strings.HasPrefix(it.Title, filter.Value) {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func (s *memSource) Scan(_ context.Context, filter Filter, limit int, after *Cursor) ([]item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scans = append(s.scans, scanCall{limit: limit, after: after})
	if s.scanErr != nil {
		return nil, s.scanErr
	}

	var out []item
	for _, it := range s.matching(filter) {
		if after != nil && it.ID <= after.ID {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, it)
	}
	return out, nil
}

// ScanAt skips natively; it is recorded as a scan with no cursor.
func (s *memSource) ScanAt(_ context.Context, filter Filter, offset, limit int) ([]item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scans = append(s.scans, scanCall{limit: limit})
	if s.scanErr != nil {
		return nil, s.scanErr
	}

	matched := s.matching(filter)
	if offset >= len(matched) {
		return nil, nil
	}
	return append([]item(nil), matched[offset:min(offset+limit, len(matched))]...), nil
}

func (s *memSource) Count(_ context.Context, filter Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countErr != nil {
		return 0, s.countErr
	}
	return len(s.matching(filter)), nil
}

func (s *memSource) CursorOf(_ Filter, it item) Cursor {
	return Cursor{SortValue: it.ID, ID: it.ID}
}

func (s *memSource) scanCalls() []scanCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]scanCall(nil), s.scans...)
}

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
