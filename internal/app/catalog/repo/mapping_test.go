package repo

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/models/m_product"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
)

func loadedProduct(t *testing.T) *domain.Product {
	t.Helper()
	return domain.ReconstructProduct(
		"p-1",
		domain.ProductDetails{
			Title:    "Camera",
			Category: "photo",
			Price:    decimal.RequireFromString("199.99"),
			Discount: decimal.NewFromInt(10),
		},
		domain.StatusActive,
		nil,
		time.Now(),
		time.Now(),
	)
}

func TestNumericConversion(t *testing.T) {
	r := big.NewRat(19999, 100)
	d, err := ratToDecimal(r)
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("199.99")))

	assert.Equal(t, 0, decimalToRat(d).Cmp(r))
}

func TestProductUpdates(t *testing.T) {
	t.Run("no changes", func(t *testing.T) {
		assert.Nil(t, productUpdates(loadedProduct(t)))
	})

	t.Run("only dirty columns", func(t *testing.T) {
		p := loadedProduct(t)
		title := "Camera X"
		require.NoError(t, p.Apply(domain.ProductPatch{Title: &title}, time.Now()))

		updates := productUpdates(p)
		assert.Equal(t, map[string]interface{}{m_product.Title: "Camera X"}, updates)
	})

	t.Run("reviews encoded as json", func(t *testing.T) {
		p := loadedProduct(t)
		review, err := domain.NewReview("r-1", "u-1", 4, "ok", time.Now())
		require.NoError(t, err)
		require.NoError(t, p.AddReview(review, time.Now()))

		updates := productUpdates(p)
		require.Contains(t, updates, m_product.Reviews)
		assert.Len(t, updates, 1)
	})
}

func TestDataToProduct(t *testing.T) {
	p := loadedProduct(t)
	review, err := domain.NewReview("r-1", "u-1", 4.5, "nice", time.Now())
	require.NoError(t, err)
	require.NoError(t, p.AddReview(review, time.Now()))

	data := productToData(p)
	// the client hands JSON columns back as generic values
	data.Reviews.Value = []interface{}{map[string]interface{}{
		"reviewId": "r-1", "userId": "u-1", "rating": 4.5, "comment": "nice",
	}}

	got, err := dataToProduct(data)
	require.NoError(t, err)
	assert.Equal(t, "Camera", got.Title())
	assert.True(t, got.Price().Equal(p.Price()))
	require.Len(t, got.Reviews(), 1)
	assert.Equal(t, "4.5", got.Rating().Average)
}

func TestProductCursorOf(t *testing.T) {
	rm := &ProductReadModel{}
	p := loadedProduct(t)

	assert.Equal(t, paging.Cursor{SortValue: "p-1", ID: "p-1"}, rm.CursorOf(paging.NoFilter(), p))
	assert.Equal(t, paging.Cursor{SortValue: "Camera", ID: "p-1"}, rm.CursorOf(paging.KeywordFilter("Cam"), p))
}

func TestResultCapacity(t *testing.T) {
	assert.Equal(t, 0, resultCapacity(0))
	assert.Equal(t, 0, resultCapacity(-5))
	assert.Equal(t, 8, resultCapacity(8))
	assert.Equal(t, maxPrealloc, resultCapacity(1_000_000_000))
	assert.Equal(t, maxPrealloc, resultCapacity(math.MaxInt))
}
