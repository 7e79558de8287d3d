package browse

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/add_review"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/remove_review"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
)

// ProductCommands are the writes a product screen can issue.
type ProductCommands struct {
	Create       *create_product.Interactor
	Update       *update_product.Interactor
	Delete       *delete_product.Interactor
	AddReview    *add_review.Interactor
	RemoveReview *remove_review.Interactor
}

// Selection is the product a caller opened, with its derived rating.
// It is owned by the caller; the browser keeps no reference to it.
type Selection struct {
	Product *domain.Product
	Rating  domain.Rating
}

// ProductBrowser is the product list of one screen. Every successful write
// invalidates the list and reloads it from page 0.
type ProductBrowser struct {
	*paging.Controller[*domain.Product]

	get  *get_product.Query
	cmds ProductCommands
}

// NewProductBrowser creates an idle browser. Call LoadInitial to populate it.
func NewProductBrowser(
	strategy paging.Strategy[*domain.Product],
	pageSize int,
	get *get_product.Query,
	cmds ProductCommands,
	logger *zap.Logger,
) *ProductBrowser {
	return &ProductBrowser{
		Controller: paging.NewController(strategy, pageSize, logger),
		get:        get,
		cmds:       cmds,
	}
}

// ShowCategory narrows the list to one category.
func (b *ProductBrowser) ShowCategory(ctx context.Context, categoryID string) bool {
	return b.SetFilter(ctx, paging.CategoryFilter(categoryID))
}

// Search narrows the list to titles starting with keyword. It replaces any
// category filter.
func (b *ProductBrowser) Search(ctx context.Context, keyword string) bool {
	return b.SetFilter(ctx, paging.KeywordFilter(keyword))
}

// ShowAll drops the active filter and reloads the full list.
func (b *ProductBrowser) ShowAll(ctx context.Context) bool {
	return b.SetFilter(ctx, paging.NoFilter())
}

// Select loads productID fresh from the store.
func (b *ProductBrowser) Select(ctx context.Context, productID string) (*Selection, error) {
	res, err := b.get.Execute(ctx, &get_product.Request{ProductID: productID})
	if err != nil {
		return nil, err
	}
	return &Selection{Product: res.Product, Rating: res.Rating}, nil
}

// Create adds a product and returns its id, or "" and false on failure.
func (b *ProductBrowser) Create(ctx context.Context, details domain.ProductDetails) (string, bool) {
	var id string
	ok := b.Mutate(ctx, func(ctx context.Context) error {
		var err error
		id, err = b.cmds.Create.Execute(ctx, &create_product.Request{Details: details})
		return err
	})
	if !ok {
		return "", false
	}
	return id, true
}

// Update applies patch to productID.
func (b *ProductBrowser) Update(ctx context.Context, productID string, patch domain.ProductPatch) bool {
	return b.Mutate(ctx, func(ctx context.Context) error {
		return b.cmds.Update.Execute(ctx, &update_product.Request{ProductID: productID, Patch: patch})
	})
}

// Delete removes productID.
func (b *ProductBrowser) Delete(ctx context.Context, productID string) bool {
	return b.Mutate(ctx, func(ctx context.Context) error {
		return b.cmds.Delete.Execute(ctx, &delete_product.Request{ProductID: productID})
	})
}

// AddReview posts a review as the signed-in user.
func (b *ProductBrowser) AddReview(ctx context.Context, productID string, rating float64, comment string) bool {
	return b.Mutate(ctx, func(ctx context.Context) error {
		_, err := b.cmds.AddReview.Execute(ctx, &add_review.Request{
			ProductID: productID,
			Rating:    rating,
			Comment:   comment,
		})
		return err
	})
}

// RemoveReview deletes reviewID from productID.
func (b *ProductBrowser) RemoveReview(ctx context.Context, productID, reviewID string) bool {
	return b.Mutate(ctx, func(ctx context.Context) error {
		return b.cmds.RemoveReview.Execute(ctx, &remove_review.Request{ProductID: productID, ReviewID: reviewID})
	})
}
