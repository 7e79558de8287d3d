package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/models/m_product"
	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
)

// ProductRepo implements ProductRepository for Spanner.
type ProductRepo struct {
	client *spanner.Client
	model  *m_product.Model
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(client *spanner.Client) contracts.ProductRepository {
	return &ProductRepo{
		client: client,
		model:  m_product.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a new product.
func (r *ProductRepo) InsertMut(product *domain.Product) (*spanner.Mutation, error) {
	return r.model.InsertMut(productToData(product)), nil
}

// UpdateMut creates a mutation for the dirty fields of a product.
func (r *ProductRepo) UpdateMut(product *domain.Product) (*spanner.Mutation, error) {
	return r.model.UpdateMut(product.ID(), productUpdates(product)), nil
}

// DeleteMut creates a mutation removing a product and its reviews.
func (r *ProductRepo) DeleteMut(productID string) *spanner.Mutation {
	return r.model.DeleteMut(productID)
}

// GetByID retrieves a product by ID, reconstructing the domain aggregate.
func (r *ProductRepo) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	return r.GetByIDWith(ctx, r.client.Single(), productID)
}

// GetByIDWith reads a product through reader.
func (r *ProductRepo) GetByIDWith(ctx context.Context, reader committer.RowReader, productID string) (*domain.Product, error) {
	row, err := reader.ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	return dataToProduct(&data)
}

// Exists checks if a product exists.
func (r *ProductRepo) Exists(ctx context.Context, productID string) (bool, error) {
	_, err := r.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, []string{m_product.ProductID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return true, nil
}

// productUpdates maps dirty fields to column values.
func productUpdates(p *domain.Product) map[string]interface{} {
	changes := p.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})
	set := func(field, column string, value func() interface{}) {
		if changes.Dirty(field) {
			updates[column] = value()
		}
	}

	set(domain.FieldTitle, m_product.Title, func() interface{} { return p.Title() })
	set(domain.FieldImage, m_product.Image, func() interface{} { return p.Image() })
	set(domain.FieldImages, m_product.Images, func() interface{} { return p.Images() })
	set(domain.FieldPrice, m_product.Price, func() interface{} { return decimalToRat(p.Price()) })
	set(domain.FieldDescription, m_product.Description, func() interface{} { return p.Description() })
	set(domain.FieldBrand, m_product.Brand, func() interface{} { return p.Brand() })
	set(domain.FieldModel, m_product.ModelColumn, func() interface{} { return p.Model() })
	set(domain.FieldColor, m_product.Color, func() interface{} { return p.Color() })
	set(domain.FieldCategory, m_product.Category, func() interface{} { return p.Category() })
	set(domain.FieldPopular, m_product.Popular, func() interface{} { return p.Popular() })
	set(domain.FieldDiscount, m_product.Discount, func() interface{} { return decimalToRat(p.Discount()) })
	set(domain.FieldStock, m_product.Stock, func() interface{} { return p.Stock() })
	set(domain.FieldSales, m_product.Sales, func() interface{} { return p.Sales() })
	set(domain.FieldStatus, m_product.Status, func() interface{} { return string(p.Status()) })
	set(domain.FieldReviews, m_product.Reviews, func() interface{} {
		return m_product.EncodeReviews(reviewsToDocs(p.Reviews()))
	})

	return updates
}
