package place_order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/clock"
)

func TestExecute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	setup := func() (*Interactor, *catalogtest.Orders) {
		ledger := catalogtest.NewLedger()
		products := catalogtest.NewProducts(ledger)
		orders := catalogtest.NewOrders(ledger)

		discounted := catalogtest.MustProduct("p-1", "Keyboard", "accessories", 100)
		discount := decimal.NewFromInt(25)
		require.NoError(t, discounted.Apply(domain.ProductPatch{Discount: &discount}, now))
		products.Seed(discounted, catalogtest.MustProduct("p-2", "Cable", "accessories", 5))

		uc := NewInteractor(orders, products, ledger, catalogtest.Session{UserID: "u-1"}, clock.NewMockClock(now))
		return uc, orders
	}

	t.Run("snapshots effective prices", func(t *testing.T) {
		uc, orders := setup()
		id, err := uc.Execute(ctx, &Request{
			Username: "Ann",
			Lines:    []Line{{ProductID: "p-1", Quantity: 1}, {ProductID: "p-2", Quantity: 3}},
		})
		require.NoError(t, err)

		order, err := orders.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderPending, order.Status())
		assert.Equal(t, "u-1", order.UserID())
		assert.Equal(t, "Keyboard", order.Items()[0].ProductTitle)
		assert.True(t, order.TotalPrice().Equal(decimal.NewFromInt(90)), order.TotalPrice().String())
	})

	t.Run("empty cart", func(t *testing.T) {
		uc, _ := setup()
		_, err := uc.Execute(ctx, &Request{})
		assert.ErrorIs(t, err, domain.ErrEmptyOrder)
	})

	t.Run("unknown product", func(t *testing.T) {
		uc, _ := setup()
		_, err := uc.Execute(ctx, &Request{Lines: []Line{{ProductID: "nope", Quantity: 1}}})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		uc, _ := setup()
		_, err := uc.Execute(ctx, &Request{Lines: []Line{{ProductID: "p-2", Quantity: 0}}})
		assert.ErrorIs(t, err, domain.ErrInvalidOrderItem)
	})
}
