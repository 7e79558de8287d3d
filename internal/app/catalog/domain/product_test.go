package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() ProductDetails {
	return ProductDetails{
		Title:       "Pixel 9",
		Image:       "https://img.example/pixel.png",
		Images:      []string{"a.png", "b.png"},
		Price:       decimal.RequireFromString("799.00"),
		Description: "Android phone",
		Brand:       "Google",
		Model:       "GX7",
		Color:       "black",
		Category:    "phones",
		Stock:       10,
	}
}

func TestNewProduct(t *testing.T) {
	now := time.Now()

	t.Run("valid product creation", func(t *testing.T) {
		p, err := NewProduct("id-1", validDetails(), now)
		require.NoError(t, err)
		assert.Equal(t, "id-1", p.ID())
		assert.Equal(t, "Pixel 9", p.Title())
		assert.Equal(t, StatusActive, p.Status())
		assert.Empty(t, p.Reviews())
		assert.True(t, p.Changes().Dirty(FieldReviews))
		assert.Equal(t, Rating{Average: "0.0", Count: 0}, p.Rating())
	})

	tests := []struct {
		name   string
		mutate func(d *ProductDetails)
		want   error
	}{
		{"empty title", func(d *ProductDetails) { d.Title = "" }, ErrEmptyTitle},
		{"empty category", func(d *ProductDetails) { d.Category = "" }, ErrInvalidCategory},
		{"negative price", func(d *ProductDetails) { d.Price = decimal.NewFromInt(-1) }, ErrInvalidPrice},
		{"discount above 100", func(d *ProductDetails) { d.Discount = decimal.NewFromInt(101) }, ErrInvalidDiscount},
		{"negative stock", func(d *ProductDetails) { d.Stock = -1 }, ErrInvalidStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(&d)
			_, err := NewProduct("id-1", d, now)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("free product is allowed", func(t *testing.T) {
		d := validDetails()
		d.Price = decimal.Zero
		_, err := NewProduct("id-1", d, now)
		assert.NoError(t, err)
	})
}

func TestProduct_Apply(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)

	t.Run("marks only patched fields dirty", func(t *testing.T) {
		p := ReconstructProduct("id-1", validDetails(), StatusActive, nil, created, created)
		title := "Pixel 9 Pro"
		stock := int64(3)

		require.NoError(t, p.Apply(ProductPatch{Title: &title, Stock: &stock}, later))
		assert.Equal(t, "Pixel 9 Pro", p.Title())
		assert.Equal(t, int64(3), p.Stock())
		assert.Equal(t, later, p.UpdatedAt())
		assert.Equal(t, []string{FieldStock, FieldTitle}, p.Changes().DirtyFields())
	})

	t.Run("invalid patch leaves product untouched", func(t *testing.T) {
		p := ReconstructProduct("id-1", validDetails(), StatusActive, nil, created, created)
		empty := ""
		color := "white"

		err := p.Apply(ProductPatch{Title: &empty, Color: &color}, later)
		assert.ErrorIs(t, err, ErrEmptyTitle)
		assert.Equal(t, "Pixel 9", p.Title())
		assert.Equal(t, "black", p.Color())
		assert.False(t, p.Changes().HasChanges())
	})

	t.Run("empty patch", func(t *testing.T) {
		p := ReconstructProduct("id-1", validDetails(), StatusActive, nil, created, created)
		assert.ErrorIs(t, p.Apply(ProductPatch{}, later), ErrNothingToUpdate)
	})

	t.Run("unknown status", func(t *testing.T) {
		p := ReconstructProduct("id-1", validDetails(), StatusActive, nil, created, created)
		status := ProductStatus("deleted")
		assert.ErrorIs(t, p.Apply(ProductPatch{Status: &status}, later), ErrInvalidStatus)
	})
}

func TestProduct_Reviews(t *testing.T) {
	now := time.Now()
	p := ReconstructProduct("id-1", validDetails(), StatusActive, nil, now, now)

	require.NoError(t, p.AddReview(Review{ReviewID: "r1", UserID: "u1", Rating: 4}, now))
	require.NoError(t, p.AddReview(Review{ReviewID: "r2", UserID: "u2", Rating: 5}, now))
	assert.Equal(t, Rating{Average: "4.5", Count: 2}, p.Rating())
	assert.True(t, p.Changes().Dirty(FieldReviews))

	snapshot := p.Reviews()
	require.NoError(t, p.RemoveReview("r1", now))
	assert.Equal(t, Rating{Average: "5.0", Count: 1}, p.Rating())
	assert.Len(t, snapshot, 2, "earlier snapshot must not change")

	assert.ErrorIs(t, p.RemoveReview("missing", now), ErrReviewNotFound)
	assert.ErrorIs(t, p.AddReview(Review{ReviewID: "r3", UserID: "u3", Rating: 6}, now), ErrInvalidRating)
}

func TestProduct_EffectivePrice(t *testing.T) {
	now := time.Now()

	d := validDetails()
	d.Price = decimal.RequireFromString("19.99")
	p := ReconstructProduct("id-1", d, StatusActive, nil, now, now)
	assert.True(t, p.EffectivePrice().Equal(decimal.RequireFromString("19.99")))

	d.Discount = decimal.NewFromInt(15)
	p = ReconstructProduct("id-1", d, StatusActive, nil, now, now)
	assert.Equal(t, "16.99", p.EffectivePrice().StringFixed(2))
}
