package list_orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
)

func TestExecute(t *testing.T) {
	ctx := context.Background()
	store := catalogtest.NewOrders(catalogtest.NewLedger())

	shipped := catalogtest.MustOrder("o-3", "u-1", 3)
	require.NoError(t, shipped.ChangeStatus(domain.OrderShipping, shipped.CreatedAt()))
	store.Seed(
		catalogtest.MustOrder("o-1", "u-1", 1),
		catalogtest.MustOrder("o-2", "u-2", 2),
		shipped,
	)
	q := NewQuery(paging.NewOffsetFetcher[*domain.Order](store, zap.NewNop()))

	t.Run("newest first", func(t *testing.T) {
		res, err := q.Execute(ctx, &Request{PageSize: 2})
		require.NoError(t, err)
		require.Len(t, res.Orders, 2)
		assert.Equal(t, "o-3", res.Orders[0].ID())
		assert.Equal(t, "o-2", res.Orders[1].ID())
		assert.True(t, res.HasMore)
		assert.Equal(t, 3, res.TotalCount)
	})

	t.Run("second page continues after cursor", func(t *testing.T) {
		res, err := q.Execute(ctx, &Request{PageSize: 2, Page: 1})
		require.NoError(t, err)
		require.Len(t, res.Orders, 1)
		assert.Equal(t, "o-1", res.Orders[0].ID())
		assert.False(t, res.HasMore)
	})

	t.Run("status filter", func(t *testing.T) {
		res, err := q.Execute(ctx, &Request{Status: "pending"})
		require.NoError(t, err)
		assert.Len(t, res.Orders, 2)
		assert.Equal(t, 2, res.TotalCount)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := q.Execute(ctx, &Request{Status: "lost"})
		assert.ErrorIs(t, err, domain.ErrInvalidOrderStatus)
	})
}
