package remove_review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/clock"
)

func TestExecute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	ledger := catalogtest.NewLedger()
	store := catalogtest.NewProducts(ledger)
	p := catalogtest.MustProduct("p-1", "Mouse", "accessories", 25)
	for _, id := range []string{"r-1", "r-2"} {
		r, err := domain.NewReview(id, "u-1", 4, "", now)
		require.NoError(t, err)
		require.NoError(t, p.AddReview(r, now))
	}
	store.Seed(p)
	uc := NewInteractor(store, ledger, clock.NewMockClock(now))

	require.NoError(t, uc.Execute(ctx, &Request{ProductID: "p-1", ReviewID: "r-1"}))

	got, err := store.GetByID(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, got.Reviews(), 1)
	assert.Equal(t, "r-2", got.Reviews()[0].ReviewID)
	assert.Equal(t, 1, got.Rating().Count)

	err = uc.Execute(ctx, &Request{ProductID: "p-1", ReviewID: "r-1"})
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
}
