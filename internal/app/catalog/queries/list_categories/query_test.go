package list_categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/catalogtest"
)

func TestExecute(t *testing.T) {
	store := catalogtest.NewProducts(catalogtest.NewLedger())
	store.Seed(
		catalogtest.MustProduct("p-1", "A", "phones", 1),
		catalogtest.MustProduct("p-2", "B", "laptops", 1),
		catalogtest.MustProduct("p-3", "C", "phones", 1),
	)

	got, err := NewQuery(store).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"laptops", "phones"}, got)
}
