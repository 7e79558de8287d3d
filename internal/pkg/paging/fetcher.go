package paging

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PageFetcher issues paged queries against a remote collection.
// Implementations never fail: backend errors become empty results.
type PageFetcher[T any] interface {
	FetchPage(ctx context.Context, req Request) Result[T]
	TotalCount(ctx context.Context, filter Filter) int
}

// Source is a cursor-only view of a remote collection. Scan returns at most
// limit documents matching filter in the collection's canonical order for
// that filter, starting strictly after the cursor when one is given.
type Source[T any] interface {
	Scan(ctx context.Context, filter Filter, limit int, after *Cursor) ([]T, error)
	Count(ctx context.Context, filter Filter) (int, error)
	// CursorOf extracts the sort key of item under the ordering used for filter.
	CursorOf(filter Filter, item T) Cursor
}

// OffsetFetcher emulates offset pagination over a Source.
//
// Page zero is a single query. Any later page first reads offset documents,
// takes the last one as a cursor and then reads pageSize documents after it.
// If fewer than offset documents exist the page is empty.
type OffsetFetcher[T any] struct {
	source   Source[T]
	logger   *zap.Logger
	recorder Recorder
}

// FetcherOption configures a fetcher.
type FetcherOption func(*fetcherConfig)

type fetcherConfig struct {
	recorder Recorder
}

func newFetcherConfig(opts []FetcherOption) fetcherConfig {
	cfg := fetcherConfig{recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithRecorder attaches a fetch observer.
func WithRecorder(r Recorder) FetcherOption {
	return func(c *fetcherConfig) {
		if r != nil {
			c.recorder = r
		}
	}
}

// NewOffsetFetcher creates a fetcher over source.
func NewOffsetFetcher[T any](source Source[T], logger *zap.Logger, opts ...FetcherOption) *OffsetFetcher[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OffsetFetcher[T]{
		source:   source,
		logger:   logger,
		recorder: newFetcherConfig(opts).recorder,
	}
}

// FetchPage returns the page addressed by req.
func (f *OffsetFetcher[T]) FetchPage(ctx context.Context, req Request) Result[T] {
	return observePage(ctx, f.logger, f.recorder, req, f.fetch)
}

func (f *OffsetFetcher[T]) fetch(ctx context.Context, req Request) ([]T, error) {
	if req.Offset == 0 {
		return f.scan(ctx, req.Filter, req.PageSize, nil)
	}

	head, err := f.scan(ctx, req.Filter, req.Offset, nil)
	if err != nil {
		return nil, err
	}
	if len(head) < req.Offset {
		// ran off the end of the collection
		return []T{}, nil
	}

	cursor := f.source.CursorOf(req.Filter, head[len(head)-1])
	return f.scan(ctx, req.Filter, req.PageSize, &cursor)
}

func (f *OffsetFetcher[T]) scan(ctx context.Context, filter Filter, limit int, after *Cursor) ([]T, error) {
	items, err := f.source.Scan(ctx, filter, limit, after)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// TotalCount returns the number of documents matching filter, or 0 when the
// count query fails.
func (f *OffsetFetcher[T]) TotalCount(ctx context.Context, filter Filter) int {
	return observeCount(ctx, f.logger, f.recorder, filter, f.source.Count)
}

// observePage validates req, runs fetch and turns any failure into an empty
// logged result.
func observePage[T any](
	ctx context.Context,
	logger *zap.Logger,
	recorder Recorder,
	req Request,
	fetch func(context.Context, Request) ([]T, error),
) Result[T] {
	start := time.Now()

	if err := req.Validate(); err != nil {
		logger.Sugar().Errorw("rejected page request",
			zap.String("filter", req.Filter.String()),
			zap.Int("offset", req.Offset),
			zap.Int("pageSize", req.PageSize),
			zap.Error(err),
		)
		recorder.ObserveFetch(req.Filter.Kind, 0, time.Since(start), err)
		return Result[T]{Items: []T{}, Err: err}
	}

	items, err := fetch(ctx, req)
	if err != nil {
		qerr := &RemoteQueryError{Op: "fetch_page", Filter: req.Filter, Offset: req.Offset, Err: err}
		logger.Sugar().Errorw("failed to fetch page",
			zap.String("filter", req.Filter.String()),
			zap.Int("offset", req.Offset),
			zap.Error(qerr),
		)
		recorder.ObserveFetch(req.Filter.Kind, 0, time.Since(start), qerr)
		return Result[T]{Items: []T{}, Err: qerr}
	}
	if items == nil {
		items = []T{}
	}

	logger.Sugar().Debugw("fetched page",
		zap.String("filter", req.Filter.String()),
		zap.Int("offset", req.Offset),
		zap.Int("items", len(items)),
	)
	recorder.ObserveFetch(req.Filter.Kind, len(items), time.Since(start), nil)
	return Result[T]{Items: items}
}

func observeCount(
	ctx context.Context,
	logger *zap.Logger,
	recorder Recorder,
	filter Filter,
	count func(context.Context, Filter) (int, error),
) int {
	n, err := count(ctx, filter)
	if err != nil {
		qerr := &RemoteQueryError{Op: "count", Filter: filter, Err: err}
		logger.Sugar().Errorw("failed to count documents",
			zap.String("filter", filter.String()),
			zap.Error(qerr),
		)
		recorder.ObserveCount(filter.Kind, qerr)
		return 0
	}
	recorder.ObserveCount(filter.Kind, nil)
	return n
}

// Seeker is a collection that can skip rows natively.
type Seeker[T any] interface {
	// ScanAt returns at most limit documents matching filter, skipping the
	// first offset in the collection's canonical order.
	ScanAt(ctx context.Context, filter Filter, offset, limit int) ([]T, error)
	Count(ctx context.Context, filter Filter) (int, error)
}

// SeekFetcher serves pages from a backend with native offset support: every
// page is a single query. Failures are handled exactly like OffsetFetcher.
type SeekFetcher[T any] struct {
	seeker   Seeker[T]
	logger   *zap.Logger
	recorder Recorder
}

// NewSeekFetcher creates a fetcher over seeker.
func NewSeekFetcher[T any](seeker Seeker[T], logger *zap.Logger, opts ...FetcherOption) *SeekFetcher[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeekFetcher[T]{
		seeker:   seeker,
		logger:   logger,
		recorder: newFetcherConfig(opts).recorder,
	}
}

// FetchPage returns the page addressed by req.
func (f *SeekFetcher[T]) FetchPage(ctx context.Context, req Request) Result[T] {
	return observePage(ctx, f.logger, f.recorder, req, func(ctx context.Context, req Request) ([]T, error) {
		return f.seeker.ScanAt(ctx, req.Filter, req.Offset, req.PageSize)
	})
}

// TotalCount returns the number of documents matching filter, or 0 when the
// count query fails.
func (f *SeekFetcher[T]) TotalCount(ctx context.Context, filter Filter) int {
	return observeCount(ctx, f.logger, f.recorder, filter, f.seeker.Count)
}
