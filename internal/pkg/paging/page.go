package paging

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultPageSize is used when a controller is built without an explicit size.
const DefaultPageSize = 8

// ErrInvalidRequest is returned for a page request with a non-positive size
// or an offset that is not a non-negative multiple of the size.
var ErrInvalidRequest = errors.New("invalid page request")

// Request describes one page of a filtered collection.
type Request struct {
	Filter   Filter
	PageSize int
	Offset   int
}

// PageRequest builds the request for zero-based page number n. A page whose
// offset does not fit in an int yields a request that fails Validate.
func PageRequest(filter Filter, pageSize, n int) Request {
	if pageSize > 0 && (n < 0 || n > math.MaxInt/pageSize) {
		return Request{Filter: filter, PageSize: pageSize, Offset: -1}
	}
	return Request{Filter: filter, PageSize: pageSize, Offset: n * pageSize}
}

// Validate checks the size and offset constraints.
func (r Request) Validate() error {
	if r.PageSize <= 0 {
		return fmt.Errorf("%w: page size %d", ErrInvalidRequest, r.PageSize)
	}
	if r.Offset < 0 || r.Offset%r.PageSize != 0 {
		return fmt.Errorf("%w: offset %d for page size %d", ErrInvalidRequest, r.Offset, r.PageSize)
	}
	return nil
}

// Page returns the zero-based page number addressed by the request.
func (r Request) Page() int {
	if r.PageSize <= 0 {
		return 0
	}
	return r.Offset / r.PageSize
}

// Result is one fetched page. Exhaustion is inferred from len(Items) by the
// merger, never reported here.
//
// Err is set when the fetch failed and Items was replaced with an empty page.
// It exists for logging and metrics; consumers treat the result as data.
type Result[T any] struct {
	Items []T
	Err   error
}

// Cursor marks the last document of a preceding bounded query.
type Cursor struct {
	SortValue interface{}
	ID        string
}

// RemoteQueryError wraps a backend failure during a paged fetch.
type RemoteQueryError struct {
	Op     string
	Filter Filter
	Offset int
	Err    error
}

func (e *RemoteQueryError) Error() string {
	return fmt.Sprintf("remote query %s failed (filter %s, offset %d): %v", e.Op, e.Filter, e.Offset, e.Err)
}

func (e *RemoteQueryError) Unwrap() error {
	return e.Err
}

// Recorder observes page fetches.
type Recorder interface {
	ObserveFetch(kind FilterKind, items int, elapsed time.Duration, err error)
	ObserveCount(kind FilterKind, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveFetch(FilterKind, int, time.Duration, error) {}
func (nopRecorder) ObserveCount(FilterKind, error)                     {}
