package paging

import (
	"fmt"
	"strings"
)

// FilterKind identifies which predicate narrows a paged query.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterCategory
	FilterKeyword
	FilterStatus
)

func (k FilterKind) String() string {
	switch k {
	case FilterCategory:
		return "category"
	case FilterKeyword:
		return "keyword"
	case FilterStatus:
		return "status"
	default:
		return "none"
	}
}

// Filter is a single, mutually exclusive predicate over a collection.
// The zero value is the empty filter.
type Filter struct {
	Kind  FilterKind
	Value string
}

// NoFilter returns the filter that matches every document.
func NoFilter() Filter {
	return Filter{Kind: FilterNone}
}

// CategoryFilter matches documents whose category equals id.
func CategoryFilter(id string) Filter {
	return newFilter(FilterCategory, id)
}

// KeywordFilter matches documents whose search field starts with text.
func KeywordFilter(text string) Filter {
	return newFilter(FilterKeyword, text)
}

// StatusFilter matches documents with the given status.
func StatusFilter(value string) Filter {
	return newFilter(FilterStatus, value)
}

// newFilter collapses blank values to NoFilter so an empty search box or an
// unselected category behaves like clearing the filter.
func newFilter(kind FilterKind, value string) Filter {
	if strings.TrimSpace(value) == "" {
		return NoFilter()
	}
	return Filter{Kind: kind, Value: value}
}

// IsNone reports whether f matches everything.
func (f Filter) IsNone() bool {
	return f.Kind == FilterNone
}

func (f Filter) String() string {
	if f.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%s=%q", f.Kind, f.Value)
}

// FilterState holds at most one active filter. Callers serialize access.
type FilterState struct {
	current Filter
}

// Current returns the active filter.
func (s *FilterState) Current() Filter {
	return s.current
}

// Set replaces the active filter and reports whether it changed.
func (s *FilterState) Set(f Filter) bool {
	if s.current == f {
		return false
	}
	s.current = f
	return true
}

// Clear drops the active filter.
func (s *FilterState) Clear() bool {
	return s.Set(NoFilter())
}
