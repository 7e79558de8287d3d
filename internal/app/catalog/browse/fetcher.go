// Package browse composes the generic paging controller with the catalog's
// queries and use cases into screen-scoped browsers.
package browse

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
)

// Mode selects how page offsets are resolved against the backend.
type Mode string

const (
	// ModeCursor emulates offsets with two bounded cursor queries.
	ModeCursor Mode = "cursor"
	// ModeNative lets the database skip rows itself.
	ModeNative Mode = "native"
)

// ParseMode accepts "cursor" and "native"; empty means cursor.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeCursor:
		return ModeCursor, nil
	case ModeNative:
		return ModeNative, nil
	default:
		return "", fmt.Errorf("unknown paging mode %q", s)
	}
}

// Collection is a backend that can serve both fetchers.
type Collection[T any] interface {
	paging.Source[T]
	ScanAt(ctx context.Context, filter paging.Filter, offset, limit int) ([]T, error)
}

// NewFetcher returns the page fetcher for mode over c.
func NewFetcher[T any](c Collection[T], mode Mode, logger *zap.Logger, opts ...paging.FetcherOption) paging.PageFetcher[T] {
	if mode == ModeNative {
		return paging.NewSeekFetcher[T](c, logger, opts...)
	}
	return paging.NewOffsetFetcher[T](c, logger, opts...)
}
