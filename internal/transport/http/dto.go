package http

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/place_order"
)

// RatingResponse is the derived rating of a product.
type RatingResponse struct {
	Average string `json:"average"`
	Count   int    `json:"count"`
}

// ReviewResponse is one embedded review.
type ReviewResponse struct {
	ReviewID  string    `json:"review_id"`
	UserID    string    `json:"user_id"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductResponse is the public view of a product.
type ProductResponse struct {
	ProductID      string           `json:"product_id"`
	Title          string           `json:"title"`
	Image          string           `json:"image,omitempty"`
	Images         []string         `json:"images,omitempty"`
	Price          string           `json:"price"`
	EffectivePrice string           `json:"effective_price"`
	Description    string           `json:"description,omitempty"`
	Brand          string           `json:"brand,omitempty"`
	Model          string           `json:"model,omitempty"`
	Color          string           `json:"color,omitempty"`
	Category       string           `json:"category"`
	Popular        bool             `json:"popular"`
	Discount       string           `json:"discount"`
	Stock          int64            `json:"stock"`
	Sales          int64            `json:"sales"`
	Status         string           `json:"status"`
	Rating         RatingResponse   `json:"rating"`
	Reviews        []ReviewResponse `json:"reviews,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// Pagination describes the page a list response holds.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// ProductPageResponse is one page of products.
type ProductPageResponse struct {
	Data       []ProductResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// ProductListResponse is an unpaged product list.
type ProductListResponse struct {
	Data []ProductResponse `json:"data"`
}

// OrderItemResponse is one order line.
type OrderItemResponse struct {
	ProductID    string `json:"product_id"`
	ProductTitle string `json:"product_title"`
	ProductImage string `json:"product_image,omitempty"`
	Price        string `json:"price"`
	Quantity     int64  `json:"quantity"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	OrderID    string              `json:"order_id"`
	UserID     string              `json:"user_id"`
	Username   string              `json:"username"`
	Phone      string              `json:"phone"`
	Address    string              `json:"address"`
	Items      []OrderItemResponse `json:"items"`
	TotalPrice string              `json:"total_price"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// OrderPageResponse is one page of orders.
type OrderPageResponse struct {
	Data       []OrderResponse `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// NotificationResponse is one inbox entry.
type NotificationResponse struct {
	NotificationID string    `json:"notification_id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	OrderID        string    `json:"order_id,omitempty"`
	Kind           string    `json:"kind"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// ProductInput is the body of a product create request.
type ProductInput struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Image       string   `json:"image" validate:"omitempty,url"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	Price       string   `json:"price" validate:"required,numeric"`
	Description string   `json:"description" validate:"max=5000"`
	Brand       string   `json:"brand" validate:"max=100"`
	Model       string   `json:"model" validate:"max=100"`
	Color       string   `json:"color" validate:"max=50"`
	Category    string   `json:"category" validate:"required,max=100"`
	Popular     bool     `json:"popular"`
	Discount    string   `json:"discount" validate:"omitempty,numeric"`
	Stock       int64    `json:"stock" validate:"gte=0"`
	Sales       int64    `json:"sales" validate:"gte=0"`
}

// ProductPatchInput is the body of a product update request. Absent fields
// are left unchanged.
type ProductPatchInput struct {
	Title       *string   `json:"title" validate:"omitempty,max=200"`
	Image       *string   `json:"image" validate:"omitempty,url"`
	Images      *[]string `json:"images"`
	Price       *string   `json:"price" validate:"omitempty,numeric"`
	Description *string   `json:"description" validate:"omitempty,max=5000"`
	Brand       *string   `json:"brand" validate:"omitempty,max=100"`
	Model       *string   `json:"model" validate:"omitempty,max=100"`
	Color       *string   `json:"color" validate:"omitempty,max=50"`
	Category    *string   `json:"category" validate:"omitempty,max=100"`
	Popular     *bool     `json:"popular"`
	Discount    *string   `json:"discount" validate:"omitempty,numeric"`
	Stock       *int64    `json:"stock" validate:"omitempty,gte=0"`
	Status      *string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ReviewInput is the body of an add review request.
type ReviewInput struct {
	Rating  float64 `json:"rating" validate:"gte=0,lte=5"`
	Comment string  `json:"comment" validate:"max=1000"`
}

// OrderLineInput is one requested product.
type OrderLineInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gt=0"`
}

// PlaceOrderInput is the body of a checkout request.
type PlaceOrderInput struct {
	Username string           `json:"username" validate:"required,max=100"`
	Phone    string           `json:"phone" validate:"required,max=30"`
	Address  string           `json:"address" validate:"required,max=500"`
	Items    []OrderLineInput `json:"items" validate:"required,min=1,dive"`
}

// OrderStatusInput is the body of an order status change.
type OrderStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending shipping delivered cancelled"`
}

func toRatingResponse(r domain.Rating) RatingResponse {
	return RatingResponse{Average: r.Average, Count: r.Count}
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:      p.ID(),
		Title:          p.Title(),
		Image:          p.Image(),
		Images:         p.Images(),
		Price:          p.Price().StringFixed(2),
		EffectivePrice: p.EffectivePrice().StringFixed(2),
		Description:    p.Description(),
		Brand:          p.Brand(),
		Model:          p.Model(),
		Color:          p.Color(),
		Category:       p.Category(),
		Popular:        p.Popular(),
		Discount:       p.Discount().String(),
		Stock:          p.Stock(),
		Sales:          p.Sales(),
		Status:         string(p.Status()),
		Rating:         toRatingResponse(p.Rating()),
		Reviews: lo.Map(p.Reviews(), func(r domain.Review, _ int) ReviewResponse {
			return ReviewResponse{
				ReviewID:  r.ReviewID,
				UserID:    r.UserID,
				Rating:    r.Rating,
				Comment:   r.Comment,
				CreatedAt: r.CreatedAt,
			}
		}),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

func toProductResponses(products []*domain.Product) []ProductResponse {
	return lo.Map(products, func(p *domain.Product, _ int) ProductResponse {
		return toProductResponse(p)
	})
}

func toOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:  o.ID(),
		UserID:   o.UserID(),
		Username: o.Username(),
		Phone:    o.Phone(),
		Address:  o.Address(),
		Items: lo.Map(o.Items(), func(i domain.OrderItem, _ int) OrderItemResponse {
			return OrderItemResponse{
				ProductID:    i.ProductID,
				ProductTitle: i.ProductTitle,
				ProductImage: i.ProductImage,
				Price:        i.Price.StringFixed(2),
				Quantity:     i.Quantity,
			}
		}),
		TotalPrice: o.TotalPrice().StringFixed(2),
		Status:     string(o.Status()),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	}
}

func toNotificationResponse(n *contracts.InboxItem) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Title:          n.Title,
		Message:        n.Message,
		OrderID:        n.OrderID,
		Kind:           n.Kind,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}

func parseDecimal(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: invalid decimal %q", name, s)
	}
	return d, nil
}

func (in *ProductInput) toDetails() (domain.ProductDetails, error) {
	price, err := parseDecimal("price", in.Price)
	if err != nil {
		return domain.ProductDetails{}, err
	}
	discount := decimal.Zero
	if in.Discount != "" {
		if discount, err = parseDecimal("discount", in.Discount); err != nil {
			return domain.ProductDetails{}, err
		}
	}
	return domain.ProductDetails{
		Title:       in.Title,
		Image:       in.Image,
		Images:      in.Images,
		Price:       price,
		Description: in.Description,
		Brand:       in.Brand,
		Model:       in.Model,
		Color:       in.Color,
		Category:    in.Category,
		Popular:     in.Popular,
		Discount:    discount,
		Stock:       in.Stock,
		Sales:       in.Sales,
	}, nil
}

func (in *ProductPatchInput) toPatch() (domain.ProductPatch, error) {
	patch := domain.ProductPatch{
		Title:       in.Title,
		Image:       in.Image,
		Images:      in.Images,
		Description: in.Description,
		Brand:       in.Brand,
		Model:       in.Model,
		Color:       in.Color,
		Category:    in.Category,
		Popular:     in.Popular,
		Stock:       in.Stock,
	}
	if in.Price != nil {
		price, err := parseDecimal("price", *in.Price)
		if err != nil {
			return patch, err
		}
		patch.Price = &price
	}
	if in.Discount != nil {
		discount, err := parseDecimal("discount", *in.Discount)
		if err != nil {
			return patch, err
		}
		patch.Discount = &discount
	}
	if in.Status != nil {
		status := domain.ProductStatus(*in.Status)
		patch.Status = &status
	}
	return patch, nil
}

func (in *PlaceOrderInput) toRequest() *place_order.Request {
	return &place_order.Request{
		Username: in.Username,
		Phone:    in.Phone,
		Address:  in.Address,
		Lines: lo.Map(in.Items, func(l OrderLineInput, _ int) place_order.Line {
			return place_order.Line{ProductID: l.ProductID, Quantity: l.Quantity}
		}),
	}
}
