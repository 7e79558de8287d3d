package paging

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Controller owns the client-side state of one paged list: the accumulated
// items, the active filter and the loading and exhaustion flags.
//
// Navigation (LoadNextPage, PreviousPage, GoToPage) is refused while a fetch
// is running; the check happens under the mutex before any I/O, so at most
// one navigation fetch is ever in flight. Operations that reset the list
// (LoadInitial, SetFilter, Refresh, SetPageSize, Mutate, Invalidate) always
// proceed and supersede whatever is running: each bumps a generation number
// and a fetch whose generation is stale is dropped when it returns. Those
// operations may therefore start a fetch while Loading is set; only the
// newest one can change the list.
//
// All methods block until their fetch completes. Callers that must not block
// run them on their own goroutine and observe progress through Subscribe.
type Controller[T any] struct {
	strategy Strategy[T]
	logger   *zap.Logger

	mu          sync.Mutex
	filter      FilterState
	items       []T
	currentPage int
	pageSize    int
	loading     bool
	hasMore     bool
	totalCount  int
	generation  uint64
	closed      bool
	subscribers []subscriber[T]
	nextSubID   int
}

type subscriber[T any] struct {
	id int
	fn func(State[T])
}

// ticket captures what a fetch was started for.
type ticket struct {
	generation uint64
	filter     Filter
	pageSize   int
	page       int
}

// NewController creates an idle controller. A non-positive pageSize selects
// DefaultPageSize.
func NewController[T any](strategy Strategy[T], pageSize int, logger *zap.Logger) *Controller[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller[T]{
		strategy:    strategy,
		logger:      logger,
		currentPage: NoPage,
		pageSize:    pageSize,
		hasMore:     true,
	}
}

// State returns a snapshot of the controller.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function removes the subscription.
func (c *Controller[T]) Subscribe(fn func(State[T])) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers = append(c.subscribers, subscriber[T]{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subscribers {
			if s.id == id {
				c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

// LoadInitial counts the collection under the active filter and loads page 0.
func (c *Controller[T]) LoadInitial(ctx context.Context) bool {
	t, ok := c.supersede(true, nil)
	if !ok {
		return false
	}
	return c.reload(ctx, t, true, Replace)
}

// LoadNextPage appends the page after the current one. It does nothing while
// a fetch is running or once the list is exhausted.
func (c *Controller[T]) LoadNextPage(ctx context.Context) bool {
	c.mu.Lock()
	if c.closed || c.loading || !c.hasMore || c.strategy.kind != StrategyPaginated {
		c.mu.Unlock()
		return false
	}
	t := c.beginLocked(c.currentPage + 1)
	snap, subs := c.snapshotLocked(), c.subscribersLocked()
	c.mu.Unlock()
	notify(subs, snap)

	res := c.strategy.fetcher.FetchPage(ctx, PageRequest(t.filter, t.pageSize, t.page))
	return c.commit(t, func() {
		c.items, c.hasMore = Merge(c.items, res.Items, Append, t.pageSize)
		if len(res.Items) > 0 || c.currentPage == NoPage {
			c.currentPage = t.page
		}
	})
}

// PreviousPage replaces the list with the page before the current one.
// The list is marked as having more pages regardless of what was fetched.
func (c *Controller[T]) PreviousPage(ctx context.Context) bool {
	return c.navigate(ctx, func(current int) (int, bool) {
		return current - 1, current > 0
	}, true)
}

// GoToPage replaces the list with page n. Requesting the current page is a
// no-op.
func (c *Controller[T]) GoToPage(ctx context.Context, n int) bool {
	return c.navigate(ctx, func(current int) (int, bool) {
		return n, n >= 0 && n != current
	}, false)
}

// Refresh reloads page 0 under the active filter, keeping the current items
// visible until the new page arrives. The total count is not refetched.
func (c *Controller[T]) Refresh(ctx context.Context) bool {
	t, ok := c.supersede(false, nil)
	if !ok {
		return false
	}
	return c.reload(ctx, t, false, Replace)
}

// SetFilter makes f the active filter, clears the list and loads it again.
// Clearing the filter runs a full LoadInitial; any other filter counts and
// then fetches the first page incrementally.
func (c *Controller[T]) SetFilter(ctx context.Context, f Filter) bool {
	t, ok := c.supersede(true, func() bool {
		c.filter.Set(f)
		return true
	})
	if !ok {
		return false
	}
	if f.IsNone() {
		return c.reload(ctx, t, true, Replace)
	}
	return c.reload(ctx, t, true, Append)
}

// SetPageSize changes the page size and reloads from page 0.
func (c *Controller[T]) SetPageSize(ctx context.Context, n int) bool {
	if n <= 0 {
		return false
	}
	t, ok := c.supersede(true, func() bool {
		if c.pageSize == n {
			return false
		}
		c.pageSize = n
		return true
	})
	if !ok {
		return false
	}
	return c.reload(ctx, t, false, Replace)
}

// Mutate runs fn against the backend. On failure the error is logged, the
// list is left untouched and false is returned. On success the list is
// invalidated and reloaded from page 0.
func (c *Controller[T]) Mutate(ctx context.Context, fn func(ctx context.Context) error) bool {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return false
	}

	if err := fn(ctx); err != nil {
		c.logger.Sugar().Errorw("mutation failed", zap.Error(err))
		return false
	}

	c.Invalidate()
	c.LoadInitial(ctx)
	return true
}

// Invalidate drops the list and marks it as awaiting reload. Any running
// fetch is discarded when it returns.
func (c *Controller[T]) Invalidate() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.generation++
	c.items = nil
	c.currentPage = NoPage
	c.loading = false
	c.hasMore = true
	snap, subs := c.snapshotLocked(), c.subscribersLocked()
	c.mu.Unlock()
	notify(subs, snap)
}

// Close detaches the controller. Results of fetches still running are
// discarded and every later call is a no-op.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.generation++
	c.loading = false
	c.subscribers = nil
}

func (c *Controller[T]) navigate(ctx context.Context, target func(current int) (int, bool), forceHasMore bool) bool {
	c.mu.Lock()
	if c.closed || c.loading || c.strategy.kind != StrategyPaginated {
		c.mu.Unlock()
		return false
	}
	page, ok := target(c.currentPage)
	if !ok {
		c.mu.Unlock()
		return false
	}
	t := c.beginLocked(page)
	snap, subs := c.snapshotLocked(), c.subscribersLocked()
	c.mu.Unlock()
	notify(subs, snap)

	res := c.strategy.fetcher.FetchPage(ctx, PageRequest(t.filter, t.pageSize, t.page))
	return c.commit(t, func() {
		c.items, c.hasMore = Merge(c.items, res.Items, Replace, t.pageSize)
		if forceHasMore {
			c.hasMore = true
		}
		c.currentPage = t.page
	})
}

// supersede starts a reset-type load. prepare runs under the lock before the
// reset and may veto it.
func (c *Controller[T]) supersede(clear bool, prepare func() bool) (ticket, bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ticket{}, false
	}
	if prepare != nil && !prepare() {
		c.mu.Unlock()
		return ticket{}, false
	}

	c.generation++
	if clear {
		c.items = nil
		c.currentPage = NoPage
		c.hasMore = true
	}
	t := c.beginLocked(0)
	snap, subs := c.snapshotLocked(), c.subscribersLocked()
	c.mu.Unlock()
	notify(subs, snap)
	return t, true
}

func (c *Controller[T]) reload(ctx context.Context, t ticket, recount bool, mode MergeMode) bool {
	if c.strategy.kind == StrategyFullLoad {
		return c.loadAll(ctx, t)
	}

	total := 0
	if recount {
		total = c.strategy.fetcher.TotalCount(ctx, t.filter)
	}
	res := c.strategy.fetcher.FetchPage(ctx, PageRequest(t.filter, t.pageSize, 0))

	return c.commit(t, func() {
		if recount {
			c.totalCount = total
		}
		c.items, c.hasMore = Merge(c.items, res.Items, mode, t.pageSize)
		c.currentPage = 0
	})
}

func (c *Controller[T]) loadAll(ctx context.Context, t ticket) bool {
	items, err := c.strategy.loader.LoadAll(ctx, t.filter)
	if err != nil {
		qerr := &RemoteQueryError{Op: "load_all", Filter: t.filter, Err: err}
		c.logger.Sugar().Errorw("failed to load collection",
			zap.String("filter", t.filter.String()),
			zap.Error(qerr),
		)
		items = nil
	}

	return c.commit(t, func() {
		c.items, _ = Merge(nil, items, Replace, 0)
		c.totalCount = len(items)
		c.currentPage = 0
		c.hasMore = false
	})
}

// beginLocked marks a fetch as running. Caller holds mu.
func (c *Controller[T]) beginLocked(page int) ticket {
	c.loading = true
	return ticket{
		generation: c.generation,
		filter:     c.filter.Current(),
		pageSize:   c.pageSize,
		page:       page,
	}
}

// commit applies a finished fetch unless it was superseded.
func (c *Controller[T]) commit(t ticket, apply func()) bool {
	c.mu.Lock()
	if c.closed || t.generation != c.generation {
		c.mu.Unlock()
		c.logger.Debug("discarding superseded fetch",
			zap.String("filter", t.filter.String()),
			zap.Int("page", t.page),
		)
		return false
	}
	apply()
	c.loading = false
	snap, subs := c.snapshotLocked(), c.subscribersLocked()
	c.mu.Unlock()
	notify(subs, snap)
	return true
}

func (c *Controller[T]) snapshotLocked() State[T] {
	items := make([]T, len(c.items))
	copy(items, c.items)
	return State[T]{
		Items:       items,
		CurrentPage: c.currentPage,
		PageSize:    c.pageSize,
		Loading:     c.loading,
		HasMore:     c.hasMore,
		TotalCount:  c.totalCount,
		Filter:      c.filter.Current(),
		Phase:       phaseOf(c.loading, c.hasMore, c.currentPage),
	}
}

func (c *Controller[T]) subscribersLocked() []subscriber[T] {
	if len(c.subscribers) == 0 {
		return nil
	}
	subs := make([]subscriber[T], len(c.subscribers))
	copy(subs, c.subscribers)
	return subs
}

// notify runs outside mu. Subscribers share snap and must not modify Items.
func notify[T any](subs []subscriber[T], snap State[T]) {
	for _, s := range subs {
		s.fn(snap)
	}
}
