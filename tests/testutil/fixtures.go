package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/repo"
)

// BaseTime is the domain creation time of seeded aggregates. Stored rows
// carry the commit timestamp instead.
var BaseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// SeedProduct inserts an active product.
func SeedProduct(t *testing.T, client *spanner.Client, id, title, category string, price int64) *domain.Product {
	t.Helper()

	p, err := domain.NewProduct(id, domain.ProductDetails{
		Title:    title,
		Category: category,
		Price:    decimal.NewFromInt(price),
		Stock:    10,
	}, BaseTime)
	require.NoError(t, err, "invalid seed product")

	mut, err := repo.NewProductRepo(client).InsertMut(p)
	require.NoError(t, err)
	_, err = client.Apply(context.Background(), []*spanner.Mutation{mut})
	require.NoError(t, err, "failed to seed product")
	return p
}

// SeedProducts inserts n products p-00, p-01, ... alternating between the
// phones and laptops categories.
func SeedProducts(t *testing.T, client *spanner.Client, n int) []*domain.Product {
	t.Helper()

	out := make([]*domain.Product, 0, n)
	for i := 0; i < n; i++ {
		category := "phones"
		if i%2 == 1 {
			category = "laptops"
		}
		out = append(out, SeedProduct(t, client, fmt.Sprintf("p-%02d", i), fmt.Sprintf("Item %02d", i), category, int64(100+i)))
	}
	return out
}

// SeedOrder inserts a pending order for userID. Rows take the commit
// timestamp, so each seeded order is newer than the ones before it.
func SeedOrder(t *testing.T, client *spanner.Client, id, userID string) *domain.Order {
	t.Helper()

	items := []domain.OrderItem{{ProductID: "p-00", ProductTitle: "Item 00", Price: decimal.NewFromInt(100), Quantity: 2}}
	o, err := domain.NewOrder(id, userID, "user", "555-0100", "1 Main St", items, BaseTime)
	require.NoError(t, err, "invalid seed order")

	mut, err := repo.NewOrderRepo().InsertMut(o)
	require.NoError(t, err)
	_, err = client.Apply(context.Background(), []*spanner.Mutation{mut})
	require.NoError(t, err, "failed to seed order")
	return o
}
