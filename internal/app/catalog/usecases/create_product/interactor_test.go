package create_product

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

	details := domain.ProductDetails{
		Title:    "Headphones",
		Category: "audio",
		Price:    decimal.RequireFromString("59.90"),
	}

	t.Run("stores active product", func(t *testing.T) {
		ledger := catalogtest.NewLedger()
		store := catalogtest.NewProducts(ledger)
		uc := NewInteractor(store, ledger, clock.NewMockClock(now))

		id, err := uc.Execute(ctx, &Request{Details: details})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		got, err := store.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Headphones", got.Title())
		assert.Equal(t, domain.StatusActive, got.Status())
		assert.Equal(t, now, got.CreatedAt())
	})

	t.Run("validation error writes nothing", func(t *testing.T) {
		ledger := catalogtest.NewLedger()
		store := catalogtest.NewProducts(ledger)
		uc := NewInteractor(store, ledger, clock.NewMockClock(now))

		invalid := details
		invalid.Title = ""
		_, err := uc.Execute(ctx, &Request{Details: invalid})
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
		assert.Zero(t, ledger.Applied())
	})

	t.Run("commit failure", func(t *testing.T) {
		ledger := catalogtest.NewLedger()
		store := catalogtest.NewProducts(ledger)
		uc := NewInteractor(store, ledger, clock.NewMockClock(now))

		ledger.FailNext(catalogtest.ErrInjected)
		_, err := uc.Execute(ctx, &Request{Details: details})
		assert.ErrorIs(t, err, catalogtest.ErrInjected)
		assert.Zero(t, store.Len())
	})
}
