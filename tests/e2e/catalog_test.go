//go:build integration

package e2e

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
	httptransport "github.com/light-bringer/shopcat-service/internal/transport/http"
)

func createProduct(t *testing.T, e *env, title, category, price string) string {
	t.Helper()

	var res httptransport.MutationResponse
	code := e.do(t, http.MethodPost, "/api/v1/products", "", httptransport.ProductInput{
		Title:    title,
		Category: category,
		Price:    price,
	}, &res)
	require.Equal(t, http.StatusCreated, code, res.Error)
	require.True(t, res.Success)
	return res.ID
}

func TestCatalogOverHTTP(t *testing.T) {
	for _, mode := range []string{"cursor", "native"} {
		t.Run(mode, func(t *testing.T) {
			e := setupTest(t, mode)

			for i := 0; i < 5; i++ {
				createProduct(t, e, fmt.Sprintf("Phone %d", i), "phones", "100")
			}
			createProduct(t, e, "ThinkPad", "laptops", "900")

			var page httptransport.ProductPageResponse
			code := e.do(t, http.MethodGet, "/api/v1/products?category=phones&page=2&page_size=2", "", nil, &page)
			require.Equal(t, http.StatusOK, code)
			assert.Len(t, page.Data, 1)
			assert.Equal(t, 5, page.Pagination.TotalItems)
			assert.Equal(t, 3, page.Pagination.TotalPages)
			assert.False(t, page.Pagination.HasMore)

			code = e.do(t, http.MethodGet, "/api/v1/products?q=Think", "", nil, &page)
			require.Equal(t, http.StatusOK, code)
			require.Len(t, page.Data, 1)
			assert.Equal(t, "laptops", page.Data[0].Category)

			var categories struct {
				Data []string `json:"data"`
			}
			code = e.do(t, http.MethodGet, "/api/v1/categories", "", nil, &categories)
			require.Equal(t, http.StatusOK, code)
			assert.Equal(t, []string{"laptops", "phones"}, categories.Data)
		})
	}
}

func TestReviewsAndOrdersOverHTTP(t *testing.T) {
	e := setupTest(t, "native")
	id := createProduct(t, e, "Galaxy phone", "phones", "300")

	var res httptransport.MutationResponse
	code := e.do(t, http.MethodPost, "/api/v1/products/"+id+"/reviews", "", httptransport.ReviewInput{Rating: 4}, &res)
	assert.Equal(t, http.StatusUnauthorized, code)

	code = e.do(t, http.MethodPost, "/api/v1/products/"+id+"/reviews", "u-1", httptransport.ReviewInput{Rating: 5, Comment: "great"}, &res)
	require.Equal(t, http.StatusCreated, code, res.Error)

	var product httptransport.ProductResponse
	code = e.do(t, http.MethodGet, "/api/v1/products/"+id, "", nil, &product)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, httptransport.RatingResponse{Average: "5.0", Count: 1}, product.Rating)

	code = e.do(t, http.MethodPost, "/api/v1/orders", "u-1", httptransport.PlaceOrderInput{
		Username: "Ana",
		Phone:    "555-0101",
		Address:  "2 Side St",
		Items:    []httptransport.OrderLineInput{{ProductID: id, Quantity: 3}},
	}, &res)
	require.Equal(t, http.StatusCreated, code, res.Error)
	orderID := res.ID

	code = e.do(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", "", httptransport.OrderStatusInput{Status: "shipping"}, &res)
	require.Equal(t, http.StatusOK, code, res.Error)

	var orders httptransport.OrderPageResponse
	code = e.do(t, http.MethodGet, "/api/v1/orders?status=shipping", "", nil, &orders)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, orders.Data, 1)
	assert.Equal(t, "900.00", orders.Data[0].TotalPrice)

	var inbox struct {
		Data []httptransport.NotificationResponse `json:"data"`
	}
	require.Eventually(t, func() bool {
		return e.do(t, http.MethodGet, "/api/v1/notifications", "u-1", nil, &inbox) == http.StatusOK && len(inbox.Data) == 1
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, orderID, inbox.Data[0].OrderID)

	code = e.do(t, http.MethodPost, "/api/v1/notifications/"+inbox.Data[0].NotificationID+"/read", "u-1", nil, &res)
	assert.Equal(t, http.StatusOK, code)
}

func TestProductBrowserOnSpanner(t *testing.T) {
	e := setupTest(t, "cursor")
	for i := 0; i < 5; i++ {
		createProduct(t, e, fmt.Sprintf("Phone %d", i), "phones", "100")
	}

	ctx := context.Background()
	b := e.svc.NewProductBrowser()
	defer b.Close()

	require.True(t, b.LoadInitial(ctx))
	st := b.State()
	assert.Len(t, st.Items, 2)
	assert.Equal(t, 5, st.TotalCount)
	assert.Equal(t, paging.Loaded, st.Phase)

	require.True(t, b.GoToPage(ctx, 2))
	st = b.State()
	assert.Len(t, st.Items, 1)
	assert.False(t, st.HasMore)

	id, ok := b.Create(ctx, domain.ProductDetails{Title: "Phone 9", Category: "phones", Price: st.Items[0].Price()})
	require.True(t, ok)
	st = b.State()
	assert.Equal(t, 0, st.CurrentPage)
	assert.Equal(t, 6, st.TotalCount)

	require.True(t, b.Delete(ctx, id))
	assert.False(t, lo.ContainsBy(b.State().Items, func(p *domain.Product) bool { return p.ID() == id }))
}
