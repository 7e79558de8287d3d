package paging

import "context"

// FullLoader returns every document matching filter in one call. Backends
// without cursor support are driven through it.
type FullLoader[T any] interface {
	LoadAll(ctx context.Context, filter Filter) ([]T, error)
}

// StrategyKind tags a Strategy.
type StrategyKind int

const (
	StrategyPaginated StrategyKind = iota
	StrategyFullLoad
)

func (k StrategyKind) String() string {
	if k == StrategyFullLoad {
		return "full_load"
	}
	return "paginated"
}

// Strategy selects how a controller reads its collection. Exactly one of
// the two sources is set, fixed at construction.
type Strategy[T any] struct {
	kind    StrategyKind
	fetcher PageFetcher[T]
	loader  FullLoader[T]
}

// Paginated reads the collection page by page.
func Paginated[T any](fetcher PageFetcher[T]) Strategy[T] {
	return Strategy[T]{kind: StrategyPaginated, fetcher: fetcher}
}

// FullLoad reads the whole collection at once and disables page navigation.
func FullLoad[T any](loader FullLoader[T]) Strategy[T] {
	return Strategy[T]{kind: StrategyFullLoad, loader: loader}
}

// Kind reports which variant s holds.
func (s Strategy[T]) Kind() StrategyKind {
	return s.kind
}

// FullLoaderFunc adapts a function to FullLoader.
type FullLoaderFunc[T any] func(ctx context.Context, filter Filter) ([]T, error)

// LoadAll calls fn.
func (fn FullLoaderFunc[T]) LoadAll(ctx context.Context, filter Filter) ([]T, error) {
	return fn(ctx, filter)
}
