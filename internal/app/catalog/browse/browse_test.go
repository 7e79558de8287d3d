package browse

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/add_review"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/remove_review"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/update_order_status"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/shopcat-service/internal/pkg/clock"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
)

var now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

type productFixture struct {
	browser *ProductBrowser
	store   *catalogtest.Products
	ledger  *catalogtest.Ledger
}

func newProductFixture(t *testing.T, n int, mode Mode) *productFixture {
	t.Helper()
	ledger := catalogtest.NewLedger()
	store := catalogtest.NewProducts(ledger)
	for i := 0; i < n; i++ {
		category := "phones"
		if i%2 == 1 {
			category = "laptops"
		}
		store.Seed(catalogtest.MustProduct(fmt.Sprintf("p-%02d", i), fmt.Sprintf("Item %02d", i), category, 100))
	}

	clk := clock.NewMockClock(now)
	user := catalogtest.Session{UserID: "u-1"}
	browser := NewProductBrowser(
		paging.Paginated(NewFetcher[*domain.Product](store, mode, zap.NewNop())),
		4,
		get_product.NewQuery(store),
		ProductCommands{
			Create:       create_product.NewInteractor(store, ledger, clk),
			Update:       update_product.NewInteractor(store, ledger, clk),
			Delete:       delete_product.NewInteractor(store, ledger),
			AddReview:    add_review.NewInteractor(store, ledger, user, clk),
			RemoveReview: remove_review.NewInteractor(store, ledger, clk),
		},
		zap.NewNop(),
	)
	t.Cleanup(browser.Close)
	return &productFixture{browser: browser, store: store, ledger: ledger}
}

func productIDs(products []*domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID()
	}
	return out
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeCursor, "cursor": ModeCursor, "native": ModeNative} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseMode("offset")
	assert.Error(t, err)
}

func TestProductBrowser_Navigation(t *testing.T) {
	ctx := context.Background()

	for _, mode := range []Mode{ModeCursor, ModeNative} {
		t.Run(string(mode), func(t *testing.T) {
			f := newProductFixture(t, 10, mode)
			b := f.browser

			require.True(t, b.LoadInitial(ctx))
			st := b.State()
			assert.Equal(t, []string{"p-00", "p-01", "p-02", "p-03"}, productIDs(st.Items))
			assert.Equal(t, 10, st.TotalCount)
			assert.Equal(t, 3, st.TotalPages())

			require.True(t, b.LoadNextPage(ctx))
			require.True(t, b.LoadNextPage(ctx))
			st = b.State()
			assert.Len(t, st.Items, 10)
			assert.Equal(t, 2, st.CurrentPage)
			assert.False(t, st.HasMore)
			assert.Equal(t, paging.Exhausted, st.Phase)
			assert.False(t, b.LoadNextPage(ctx))

			require.True(t, b.PreviousPage(ctx))
			st = b.State()
			assert.Equal(t, []string{"p-04", "p-05", "p-06", "p-07"}, productIDs(st.Items))
			assert.True(t, st.HasMore)
		})
	}
}

func TestProductBrowser_Filters(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t, 10, ModeCursor)
	b := f.browser
	require.True(t, b.LoadInitial(ctx))

	t.Run("category", func(t *testing.T) {
		require.True(t, b.ShowCategory(ctx, "laptops"))
		st := b.State()
		assert.Equal(t, paging.CategoryFilter("laptops"), st.Filter)
		assert.Equal(t, []string{"p-01", "p-03", "p-05", "p-07"}, productIDs(st.Items))
		assert.Equal(t, 5, st.TotalCount)
	})

	t.Run("keyword replaces category", func(t *testing.T) {
		require.True(t, b.Search(ctx, "Item 0"))
		st := b.State()
		assert.Equal(t, paging.FilterKeyword, st.Filter.Kind)
		assert.Equal(t, []string{"p-00", "p-01", "p-02", "p-03"}, productIDs(st.Items))
		assert.Equal(t, 10, st.TotalCount)
	})

	t.Run("keyword is case-sensitive", func(t *testing.T) {
		require.True(t, b.Search(ctx, "item"))
		st := b.State()
		assert.Empty(t, st.Items)
		assert.False(t, st.HasMore)
	})

	t.Run("show all", func(t *testing.T) {
		require.True(t, b.ShowAll(ctx))
		st := b.State()
		assert.True(t, st.Filter.IsNone())
		assert.Len(t, st.Items, 4)
		assert.Equal(t, 0, st.CurrentPage)
	})
}

func TestProductBrowser_Mutations(t *testing.T) {
	ctx := context.Background()

	t.Run("create reloads from page zero", func(t *testing.T) {
		f := newProductFixture(t, 6, ModeCursor)
		b := f.browser
		require.True(t, b.LoadInitial(ctx))
		require.True(t, b.LoadNextPage(ctx))

		id, ok := b.Create(ctx, domain.ProductDetails{
			Title:    "Keyboard",
			Category: "accessories",
			Price:    decimal.NewFromInt(40),
		})
		require.True(t, ok)
		require.NotEmpty(t, id)

		st := b.State()
		assert.Equal(t, 0, st.CurrentPage)
		assert.Equal(t, 7, st.TotalCount)
		assert.Len(t, st.Items, 4)
		// uuids sort ahead of the seeded p- ids
		assert.Equal(t, id, st.Items[0].ID())
	})

	t.Run("failed write leaves list untouched", func(t *testing.T) {
		f := newProductFixture(t, 6, ModeCursor)
		b := f.browser
		require.True(t, b.LoadInitial(ctx))
		require.True(t, b.LoadNextPage(ctx))
		before := b.State()
		scans := f.store.Scans()

		f.ledger.FailNext(catalogtest.ErrInjected)
		assert.False(t, b.Delete(ctx, "p-00"))

		assert.Equal(t, before, b.State())
		assert.Equal(t, scans, f.store.Scans())
		assert.Equal(t, 6, f.store.Len())
	})

	t.Run("delete of unknown product", func(t *testing.T) {
		f := newProductFixture(t, 2, ModeCursor)
		require.True(t, f.browser.LoadInitial(ctx))
		assert.False(t, f.browser.Delete(ctx, "missing"))
		assert.Len(t, f.browser.State().Items, 2)
	})

	t.Run("update is visible after reload", func(t *testing.T) {
		f := newProductFixture(t, 3, ModeCursor)
		b := f.browser
		require.True(t, b.LoadInitial(ctx))

		title := "Renamed"
		require.True(t, b.Update(ctx, "p-01", domain.ProductPatch{Title: &title}))
		assert.Equal(t, "Renamed", b.State().Items[1].Title())
	})

	t.Run("reviews", func(t *testing.T) {
		f := newProductFixture(t, 3, ModeCursor)
		b := f.browser
		require.True(t, b.LoadInitial(ctx))

		require.True(t, b.AddReview(ctx, "p-02", 5, "great"))
		require.True(t, b.AddReview(ctx, "p-02", 4, "fine"))

		sel, err := b.Select(ctx, "p-02")
		require.NoError(t, err)
		assert.Equal(t, domain.Rating{Average: "4.5", Count: 2}, sel.Rating)

		reviewID := sel.Product.Reviews()[0].ReviewID
		require.True(t, b.RemoveReview(ctx, "p-02", reviewID))

		// the earlier selection is a snapshot
		assert.Len(t, sel.Product.Reviews(), 2)

		sel, err = b.Select(ctx, "p-02")
		require.NoError(t, err)
		assert.Equal(t, domain.Rating{Average: "4.0", Count: 1}, sel.Rating)
		assert.Equal(t, 1, b.State().Items[2].Rating().Count)
	})

	t.Run("rejected review", func(t *testing.T) {
		f := newProductFixture(t, 1, ModeCursor)
		require.True(t, f.browser.LoadInitial(ctx))
		assert.False(t, f.browser.AddReview(ctx, "p-00", 9, "too high"))
	})
}

func TestProductBrowser_SelectMissing(t *testing.T) {
	f := newProductFixture(t, 1, ModeCursor)
	_, err := f.browser.Select(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductBrowser_BackendFailure(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t, 6, ModeCursor)
	f.store.FailScans(catalogtest.ErrInjected)

	require.True(t, f.browser.LoadInitial(ctx))
	st := f.browser.State()
	assert.Empty(t, st.Items)
	assert.False(t, st.HasMore)
	assert.Equal(t, 0, st.TotalCount)
}

func TestOrderBrowser(t *testing.T) {
	ctx := context.Background()

	ledger := catalogtest.NewLedger()
	orders := catalogtest.NewOrders(ledger)
	for i := 0; i < 5; i++ {
		orders.Seed(catalogtest.MustOrder(fmt.Sprintf("o-%d", i), "u-1", i))
	}
	notifier := &catalogtest.Notifier{}
	b := NewOrderBrowser(
		paging.Paginated(NewFetcher[*domain.Order](orders, ModeNative, zap.NewNop())),
		2,
		update_order_status.NewInteractor(orders, ledger, notifier, clock.NewMockClock(now), zap.NewNop()),
		zap.NewNop(),
	)
	defer b.Close()

	require.True(t, b.LoadInitial(ctx))
	assert.Equal(t, []string{"o-4", "o-3"}, orderIDs(b.State().Items))

	require.True(t, b.ShowStatus(ctx, "pending"))
	assert.Equal(t, 5, b.State().TotalCount)

	require.True(t, b.ChangeStatus(ctx, "o-4", "shipping"))
	st := b.State()
	assert.Equal(t, paging.StatusFilter("pending"), st.Filter)
	assert.Equal(t, 4, st.TotalCount)
	assert.Equal(t, []string{"o-3", "o-2"}, orderIDs(st.Items))
	require.Eventually(t, func() bool { return len(notifier.Sent()) == 1 }, time.Second, 5*time.Millisecond)

	t.Run("illegal transition", func(t *testing.T) {
		assert.False(t, b.ChangeStatus(ctx, "o-3", "delivered"))
		assert.Equal(t, 4, b.State().TotalCount)
	})

	t.Run("all statuses", func(t *testing.T) {
		require.True(t, b.ShowStatus(ctx, ""))
		assert.Equal(t, 5, b.State().TotalCount)
	})
}

func orderIDs(orders []*domain.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID()
	}
	return out
}
