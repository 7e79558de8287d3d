package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/queries/list_categories"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/queries/list_orders"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/queries/search_products"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/add_review"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/place_order"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/remove_review"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/update_order_status"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/shopcat-service/internal/pkg/session"
)

const (
	maxPageSize       = 100
	maxPage           = 10_000
	defaultInboxLimit = 50
)

// MutationObserver counts writes by outcome.
type MutationObserver interface {
	ObserveMutation(op string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveMutation(string, error) {}

// Options holds the handler's dependencies. Observer may be nil.
type Options struct {
	CreateProduct     *create_product.Interactor
	UpdateProduct     *update_product.Interactor
	DeleteProduct     *delete_product.Interactor
	AddReview         *add_review.Interactor
	RemoveReview      *remove_review.Interactor
	PlaceOrder        *place_order.Interactor
	UpdateOrderStatus *update_order_status.Interactor

	GetProduct     *get_product.Query
	ListProducts   *list_products.Query
	SearchProducts *search_products.Query
	ListCategories *list_categories.Query
	ListOrders     *list_orders.Query

	Inbox    contracts.Inbox
	Observer MutationObserver
	Logger   *zap.Logger
}

// Handler serves the catalog over HTTP.
type Handler struct {
	createProduct     *create_product.Interactor
	updateProduct     *update_product.Interactor
	deleteProduct     *delete_product.Interactor
	addReview         *add_review.Interactor
	removeReview      *remove_review.Interactor
	placeOrder        *place_order.Interactor
	updateOrderStatus *update_order_status.Interactor

	getProduct     *get_product.Query
	listProducts   *list_products.Query
	searchProducts *search_products.Query
	listCategories *list_categories.Query
	listOrders     *list_orders.Query

	inbox     contracts.Inbox
	mutations MutationObserver
	logger    *zap.Logger
	validate  *validator.Validate
}

// NewHandler creates a new HTTP handler.
func NewHandler(opts Options) *Handler {
	h := &Handler{
		createProduct:     opts.CreateProduct,
		updateProduct:     opts.UpdateProduct,
		deleteProduct:     opts.DeleteProduct,
		addReview:         opts.AddReview,
		removeReview:      opts.RemoveReview,
		placeOrder:        opts.PlaceOrder,
		updateOrderStatus: opts.UpdateOrderStatus,
		getProduct:        opts.GetProduct,
		listProducts:      opts.ListProducts,
		searchProducts:    opts.SearchProducts,
		listCategories:    opts.ListCategories,
		listOrders:        opts.ListOrders,
		inbox:             opts.Inbox,
		mutations:         opts.Observer,
		logger:            opts.Logger,
		validate:          validator.New(),
	}
	if h.mutations == nil {
		h.mutations = nopObserver{}
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	return h
}

var errBadQuery = errors.New("invalid query parameter")

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errBadQuery
	}
	return v, nil
}

// pageParams reads the zero-based page and the page size.
func pageParams(r *http.Request) (page, size int, err error) {
	if page, err = intParam(r, "page", 0); err != nil || page < 0 || page > maxPage {
		return 0, 0, errBadQuery
	}
	if size, err = intParam(r, "page_size", 0); err != nil || size < 0 || size > maxPageSize {
		return 0, 0, errBadQuery
	}
	return page, size, nil
}

// ListProducts handles GET /api/v1/products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "page must be between 0 and 10000 and page_size between 1 and 100")
		return
	}

	q := r.URL.Query()
	res, err := h.listProducts.Execute(r.Context(), &list_products.Request{
		Category: q.Get("category"),
		Keyword:  q.Get("q"),
		Status:   q.Get("status"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, ProductPageResponse{
		Data: toProductResponses(res.Products),
		Pagination: Pagination{
			Page:       res.Page,
			PageSize:   res.PageSize,
			TotalItems: res.TotalCount,
			TotalPages: res.TotalPages,
			HasMore:    res.HasMore,
		},
	})
}

// GetProduct handles GET /api/v1/products/{productId}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	res, err := h.getProduct.Execute(r.Context(), &get_product.Request{ProductID: chi.URLParam(r, "productId")})
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, toProductResponse(res.Product))
}

// SearchProducts handles GET /api/v1/products/search.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := domain.DefaultSearchCriteria()
	criteria.Category = q.Get("category")

	bounds := []struct {
		name   string
		target *decimal.Decimal
	}{
		{"min_price", &criteria.MinPrice},
		{"max_price", &criteria.MaxPrice},
		{"min_rating", &criteria.MinRating},
	}
	for _, b := range bounds {
		raw := q.Get(b.name)
		if raw == "" {
			continue
		}
		d, err := parseDecimal(b.name, raw)
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		*b.target = d
	}

	products, err := h.searchProducts.Execute(r.Context(), &search_products.Request{
		Keyword:  q.Get("q"),
		Criteria: criteria,
	})
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, ProductListResponse{Data: toProductResponses(products)})
}

// ListCategories handles GET /api/v1/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listCategories.Execute(r.Context())
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string][]string{"data": categories})
}

// CreateProduct handles POST /api/v1/products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input ProductInput
	if err := h.decode(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	details, err := input.toDetails()
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.createProduct.Execute(r.Context(), &create_product.Request{Details: details})
	h.respondWithMutation(w, r, "create_product", id, err)
}

// UpdateProduct handles PUT /api/v1/products/{productId}.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var input ProductPatchInput
	if err := h.decode(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	patch, err := input.toPatch()
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.updateProduct.Execute(r.Context(), &update_product.Request{
		ProductID: chi.URLParam(r, "productId"),
		Patch:     patch,
	})
	h.respondWithMutation(w, r, "update_product", "", err)
}

// DeleteProduct handles DELETE /api/v1/products/{productId}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	err := h.deleteProduct.Execute(r.Context(), &delete_product.Request{ProductID: chi.URLParam(r, "productId")})
	h.respondWithMutation(w, r, "delete_product", "", err)
}

// AddReview handles POST /api/v1/products/{productId}/reviews.
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	var input ReviewInput
	if err := h.decode(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.addReview.Execute(r.Context(), &add_review.Request{
		ProductID: chi.URLParam(r, "productId"),
		Rating:    input.Rating,
		Comment:   input.Comment,
	})
	h.respondWithMutation(w, r, "add_review", id, err)
}

// RemoveReview handles DELETE /api/v1/products/{productId}/reviews/{reviewId}.
func (h *Handler) RemoveReview(w http.ResponseWriter, r *http.Request) {
	err := h.removeReview.Execute(r.Context(), &remove_review.Request{
		ProductID: chi.URLParam(r, "productId"),
		ReviewID:  chi.URLParam(r, "reviewId"),
	})
	h.respondWithMutation(w, r, "remove_review", "", err)
}

// ListOrders handles GET /api/v1/orders.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "page must be between 0 and 10000 and page_size between 1 and 100")
		return
	}

	res, err := h.listOrders.Execute(r.Context(), &list_orders.Request{
		Status:   r.URL.Query().Get("status"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}

	data := make([]OrderResponse, len(res.Orders))
	for i, o := range res.Orders {
		data[i] = toOrderResponse(o)
	}
	h.respondWithJSON(w, http.StatusOK, OrderPageResponse{
		Data: data,
		Pagination: Pagination{
			Page:       res.Page,
			PageSize:   res.PageSize,
			TotalItems: res.TotalCount,
			TotalPages: res.TotalPages,
			HasMore:    res.HasMore,
		},
	})
}

// PlaceOrder handles POST /api/v1/orders.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var input PlaceOrderInput
	if err := h.decode(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.placeOrder.Execute(r.Context(), input.toRequest())
	h.respondWithMutation(w, r, "place_order", id, err)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var input OrderStatusInput
	if err := h.decode(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.updateOrderStatus.Execute(r.Context(), &update_order_status.Request{
		OrderID: chi.URLParam(r, "orderId"),
		Status:  input.Status,
	})
	h.respondWithMutation(w, r, "update_order_status", "", err)
}

// ListNotifications handles GET /api/v1/notifications for the current user.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserID(r.Context())
	if !ok {
		h.respondWithDomainError(w, r, session.ErrUnauthenticated)
		return
	}
	limit, err := intParam(r, "limit", defaultInboxLimit)
	if err != nil || limit <= 0 || limit > maxPageSize {
		h.respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}

	items, err := h.inbox.ListForUser(r.Context(), userID, limit)
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}
	data := make([]NotificationResponse, len(items))
	for i, n := range items {
		data[i] = toNotificationResponse(n)
	}
	h.respondWithJSON(w, http.StatusOK, map[string][]NotificationResponse{"data": data})
}

// MarkNotificationRead handles POST /api/v1/notifications/{notificationId}/read.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserID(r.Context())
	if !ok {
		h.respondWithMutation(w, r, "mark_notification_read", "", session.ErrUnauthenticated)
		return
	}
	err := h.inbox.MarkRead(r.Context(), userID, chi.URLParam(r, "notificationId"))
	h.respondWithMutation(w, r, "mark_notification_read", "", err)
}
