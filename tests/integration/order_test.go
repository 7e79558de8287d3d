//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/repo"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/place_order"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/update_order_status"
	"github.com/light-bringer/shopcat-service/internal/pkg/clock"
	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
	"github.com/light-bringer/shopcat-service/internal/pkg/session"
	"github.com/light-bringer/shopcat-service/tests/testutil"
)

func orderIDs(orders []*domain.Order) []string {
	return lo.Map(orders, func(o *domain.Order, _ int) string { return o.ID() })
}

func TestOrderReadModel_NewestFirst(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	rm := repo.NewOrderReadModel(client)
	for _, id := range []string{"o-1", "o-2", "o-3", "o-4", "o-5"} {
		testutil.SeedOrder(t, client, id, "u-1")
	}

	first, err := rm.Scan(ctx, paging.NoFilter(), 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"o-5", "o-4"}, orderIDs(first))

	cursor := rm.CursorOf(paging.NoFilter(), first[1])
	next, err := rm.Scan(ctx, paging.NoFilter(), 2, &cursor)
	require.NoError(t, err)
	assert.Equal(t, []string{"o-3", "o-2"}, orderIDs(next))

	last, err := rm.ScanAt(ctx, paging.NoFilter(), 4, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"o-1"}, orderIDs(last))

	count, err := rm.Count(ctx, paging.StatusFilter(string(domain.OrderPending)))
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestOrders_PlaceAndShip(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := session.WithUserID(context.Background(), "u-7")
	clk := clock.NewMockClock(testutil.BaseTime)
	comm := committer.NewCommitter(client)
	orders := repo.NewOrderRepo()
	reader := repo.NewOrderReadModel(client)
	inbox := repo.NewNotificationRepo(client)

	testutil.SeedProduct(t, client, "p-1", "Galaxy phone", "phones", 300)
	testutil.SeedProduct(t, client, "p-2", "ThinkPad", "laptops", 900)

	place := place_order.NewInteractor(orders, repo.NewProductRepo(client), comm, session.NewContextProvider(), clk)
	orderID, err := place.Execute(ctx, &place_order.Request{
		Username: "Ana",
		Phone:    "555-0101",
		Address:  "2 Side St",
		Lines:    []place_order.Line{{ProductID: "p-1", Quantity: 2}, {ProductID: "p-2", Quantity: 1}},
	})
	require.NoError(t, err)

	order, err := reader.GetByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, "u-7", order.UserID())
	assert.Equal(t, domain.OrderPending, order.Status())
	assert.Equal(t, "1500", order.TotalPrice().String())
	assert.Len(t, order.Items(), 2)

	_, err = place.Execute(ctx, &place_order.Request{Lines: []place_order.Line{{ProductID: "missing", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	testutil.AssertRowCount(t, client, "orders", 1)

	update := update_order_status.NewInteractor(orders, comm, inbox, clk, zap.NewNop())
	require.NoError(t, update.Execute(ctx, &update_order_status.Request{OrderID: orderID, Status: string(domain.OrderShipping)}))

	order, err = reader.GetByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipping, order.Status())

	var items []*contracts.InboxItem
	require.Eventually(t, func() bool {
		items, err = inbox.ListForUser(ctx, "u-7", 10)
		return err == nil && len(items) == 1
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, orderID, items[0].OrderID)
	assert.Equal(t, contracts.KindOrderStatusUpdate, items[0].Kind)
	assert.False(t, items[0].IsRead)

	err = update.Execute(ctx, &update_order_status.Request{OrderID: orderID, Status: string(domain.OrderPending)})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}
