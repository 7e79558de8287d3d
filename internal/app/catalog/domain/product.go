package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field names for change tracking
const (
	FieldTitle       = "title"
	FieldImage       = "image"
	FieldImages      = "images"
	FieldPrice       = "price"
	FieldDescription = "description"
	FieldBrand       = "brand"
	FieldModel       = "model"
	FieldColor       = "color"
	FieldCategory    = "category"
	FieldPopular     = "popular"
	FieldDiscount    = "discount"
	FieldStock       = "stock"
	FieldSales       = "sales"
	FieldStatus      = "status"
	FieldReviews     = "reviews"
)

// ProductStatus is the catalog visibility of a product.
type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusInactive ProductStatus = "inactive"
)

// Valid reports whether s is a known status.
func (s ProductStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

var hundred = decimal.NewFromInt(100)

// ProductDetails holds the editable attributes of a product.
type ProductDetails struct {
	Title       string
	Image       string
	Images      []string
	Price       decimal.Decimal
	Description string
	Brand       string
	Model       string
	Color       string
	Category    string
	Popular     bool
	// Discount is a percentage in [0, 100].
	Discount decimal.Decimal
	Stock    int64
	Sales    int64
}

func (d ProductDetails) validate() error {
	if d.Title == "" {
		return ErrEmptyTitle
	}
	if d.Category == "" {
		return ErrInvalidCategory
	}
	if d.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if d.Discount.IsNegative() || d.Discount.GreaterThan(hundred) {
		return ErrInvalidDiscount
	}
	if d.Stock < 0 || d.Sales < 0 {
		return ErrInvalidStock
	}
	return nil
}

// ProductPatch lists the fields an update changes; nil means unchanged.
type ProductPatch struct {
	Title       *string
	Image       *string
	Images      *[]string
	Price       *decimal.Decimal
	Description *string
	Brand       *string
	Model       *string
	Color       *string
	Category    *string
	Popular     *bool
	Discount    *decimal.Decimal
	Stock       *int64
	Status      *ProductStatus
}

// Product is the catalog aggregate. Its reviews are embedded and always
// written together with the product row.
type Product struct {
	id        string
	details   ProductDetails
	status    ProductStatus
	reviews   []Review
	createdAt time.Time
	updatedAt time.Time

	changes *ChangeTracker
}

// NewProduct creates an active product with no reviews.
func NewProduct(id string, details ProductDetails, now time.Time) (*Product, error) {
	if err := details.validate(); err != nil {
		return nil, err
	}

	p := &Product{
		id:        id,
		details:   details,
		status:    StatusActive,
		reviews:   []Review{},
		createdAt: now,
		updatedAt: now,
		changes:   NewChangeTracker(),
	}
	p.details.Images = append([]string{}, details.Images...)
	p.changes.MarkDirty(
		FieldTitle, FieldImage, FieldImages, FieldPrice, FieldDescription,
		FieldBrand, FieldModel, FieldColor, FieldCategory, FieldPopular,
		FieldDiscount, FieldStock, FieldSales, FieldStatus, FieldReviews,
	)
	return p, nil
}

// ReconstructProduct rebuilds a product loaded from storage.
func ReconstructProduct(
	id string,
	details ProductDetails,
	status ProductStatus,
	reviews []Review,
	createdAt, updatedAt time.Time,
) *Product {
	if reviews == nil {
		reviews = []Review{}
	}
	return &Product{
		id:        id,
		details:   details,
		status:    status,
		reviews:   reviews,
		createdAt: createdAt,
		updatedAt: updatedAt,
		changes:   NewChangeTracker(),
	}
}

func (p *Product) ID() string                { return p.id }
func (p *Product) Title() string             { return p.details.Title }
func (p *Product) Image() string             { return p.details.Image }
func (p *Product) Images() []string          { return append([]string{}, p.details.Images...) }
func (p *Product) Price() decimal.Decimal    { return p.details.Price }
func (p *Product) Description() string       { return p.details.Description }
func (p *Product) Brand() string             { return p.details.Brand }
func (p *Product) Model() string             { return p.details.Model }
func (p *Product) Color() string             { return p.details.Color }
func (p *Product) Category() string          { return p.details.Category }
func (p *Product) Popular() bool             { return p.details.Popular }
func (p *Product) Discount() decimal.Decimal { return p.details.Discount }
func (p *Product) Stock() int64              { return p.details.Stock }
func (p *Product) Sales() int64              { return p.details.Sales }
func (p *Product) Status() ProductStatus     { return p.status }
func (p *Product) CreatedAt() time.Time      { return p.createdAt }
func (p *Product) UpdatedAt() time.Time      { return p.updatedAt }
func (p *Product) Changes() *ChangeTracker   { return p.changes }
func (p *Product) Details() ProductDetails   { return p.details }
func (p *Product) Reviews() []Review         { return append([]Review{}, p.reviews...) }
func (p *Product) IsActive() bool            { return p.status == StatusActive }

// Rating recomputes the review summary.
func (p *Product) Rating() Rating {
	return RecomputeRating(p.reviews)
}

// EffectivePrice is the price after the percentage discount, rounded to cents.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.details.Discount.IsZero() {
		return p.details.Price
	}
	factor := hundred.Sub(p.details.Discount).Div(hundred)
	return p.details.Price.Mul(factor).Round(2)
}

// Apply validates and applies a patch. Nothing changes if validation fails.
func (p *Product) Apply(patch ProductPatch, now time.Time) error {
	next := p.details
	var dirty []string

	if patch.Title != nil {
		next.Title = *patch.Title
		dirty = append(dirty, FieldTitle)
	}
	if patch.Image != nil {
		next.Image = *patch.Image
		dirty = append(dirty, FieldImage)
	}
	if patch.Images != nil {
		next.Images = append([]string{}, (*patch.Images)...)
		dirty = append(dirty, FieldImages)
	}
	if patch.Price != nil {
		next.Price = *patch.Price
		dirty = append(dirty, FieldPrice)
	}
	if patch.Description != nil {
		next.Description = *patch.Description
		dirty = append(dirty, FieldDescription)
	}
	if patch.Brand != nil {
		next.Brand = *patch.Brand
		dirty = append(dirty, FieldBrand)
	}
	if patch.Model != nil {
		next.Model = *patch.Model
		dirty = append(dirty, FieldModel)
	}
	if patch.Color != nil {
		next.Color = *patch.Color
		dirty = append(dirty, FieldColor)
	}
	if patch.Category != nil {
		next.Category = *patch.Category
		dirty = append(dirty, FieldCategory)
	}
	if patch.Popular != nil {
		next.Popular = *patch.Popular
		dirty = append(dirty, FieldPopular)
	}
	if patch.Discount != nil {
		next.Discount = *patch.Discount
		dirty = append(dirty, FieldDiscount)
	}
	if patch.Stock != nil {
		next.Stock = *patch.Stock
		dirty = append(dirty, FieldStock)
	}

	status := p.status
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return ErrInvalidStatus
		}
		status = *patch.Status
		dirty = append(dirty, FieldStatus)
	}

	if len(dirty) == 0 {
		return ErrNothingToUpdate
	}
	if err := next.validate(); err != nil {
		return err
	}

	p.details = next
	p.status = status
	p.updatedAt = now
	p.changes.MarkDirty(dirty...)
	return nil
}

// AddReview appends a review.
func (p *Product) AddReview(r Review, now time.Time) error {
	if r.UserID == "" {
		return ErrEmptyReviewer
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return ErrInvalidRating
	}
	p.reviews = append(p.reviews, r)
	p.updatedAt = now
	p.changes.MarkDirty(FieldReviews)
	return nil
}

// RemoveReview deletes the review with the given id.
func (p *Product) RemoveReview(reviewID string, now time.Time) error {
	for i, r := range p.reviews {
		if r.ReviewID == reviewID {
			p.reviews = append(p.reviews[:i:i], p.reviews[i+1:]...)
			p.updatedAt = now
			p.changes.MarkDirty(FieldReviews)
			return nil
		}
	}
	return ErrReviewNotFound
}
