package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/samber/lo"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/models/m_product"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
	"github.com/light-bringer/shopcat-service/internal/pkg/query"
)

// ProductReadModel implements ProductReader for Spanner.
type ProductReadModel struct {
	client *spanner.Client
}

// NewProductReadModel creates a new ProductReadModel.
func NewProductReadModel(client *spanner.Client) contracts.ProductReader {
	return &ProductReadModel{client: client}
}

// filtered applies the WHERE clause and ordering for filter.
func (rm *ProductReadModel) filtered(filter paging.Filter) (*query.Builder, error) {
	b := query.From(m_product.TableName).Select(m_product.Columns...)

	switch filter.Kind {
	case paging.FilterNone:
		return b.OrderBy(m_product.ProductID, query.Asc), nil
	case paging.FilterCategory:
		return b.Where(query.Eq(m_product.Category, filter.Value)).
			OrderBy(m_product.ProductID, query.Asc), nil
	case paging.FilterStatus:
		return b.Where(query.Eq(m_product.Status, filter.Value)).
			OrderBy(m_product.ProductID, query.Asc), nil
	case paging.FilterKeyword:
		return b.Where(query.Prefix(m_product.Title, filter.Value)).
			OrderBy(m_product.Title, query.Asc).
			OrderBy(m_product.ProductID, query.Asc), nil
	default:
		return nil, fmt.Errorf("unsupported product filter %s", filter.Kind)
	}
}

// Scan returns up to limit products matching filter, after the cursor if one
// is given.
func (rm *ProductReadModel) Scan(ctx context.Context, filter paging.Filter, limit int, after *paging.Cursor) ([]*domain.Product, error) {
	b, err := rm.filtered(filter)
	if err != nil {
		return nil, err
	}

	if after != nil {
		if filter.Kind == paging.FilterKeyword {
			b = b.Where(query.After(m_product.Title, after.SortValue, m_product.ProductID, after.ID, query.Asc))
		} else {
			b = b.Where(query.After(m_product.ProductID, after.ID, m_product.ProductID, after.ID, query.Asc))
		}
	}

	return rm.queryProducts(ctx, b.Limit(int64(limit)).Build(), limit)
}

// ScanAt returns up to limit products matching filter, skipping the first
// offset rows.
func (rm *ProductReadModel) ScanAt(ctx context.Context, filter paging.Filter, offset, limit int) ([]*domain.Product, error) {
	b, err := rm.filtered(filter)
	if err != nil {
		return nil, err
	}
	return rm.queryProducts(ctx, b.Limit(int64(limit)).Offset(int64(offset)).Build(), limit)
}

// Count returns the number of products matching filter.
func (rm *ProductReadModel) Count(ctx context.Context, filter paging.Filter) (int, error) {
	b, err := rm.filtered(filter)
	if err != nil {
		return 0, err
	}
	return countRows(ctx, rm.client, b.Count().Build())
}

// CursorOf returns the sort key of p under the ordering used for filter.
func (rm *ProductReadModel) CursorOf(filter paging.Filter, p *domain.Product) paging.Cursor {
	if filter.Kind == paging.FilterKeyword {
		return paging.Cursor{SortValue: p.Title(), ID: p.ID()}
	}
	return paging.Cursor{SortValue: p.ID(), ID: p.ID()}
}

// GetByID retrieves a product by ID.
func (rm *ProductReadModel) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.Columns)
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

// ScanByPrefix returns every product whose field starts with prefix.
func (rm *ProductReadModel) ScanByPrefix(ctx context.Context, field, prefix string) ([]*domain.Product, error) {
	if !lo.Contains(domain.LegacySearchFields, field) {
		return nil, fmt.Errorf("field %q is not searchable", field)
	}

	stmt := query.From(m_product.TableName).
		Select(m_product.Columns...).
		Where(query.Prefix(field, prefix)).
		OrderBy(m_product.ProductID, query.Asc).
		Build()
	return rm.queryProducts(ctx, stmt, 0)
}

// All returns the whole collection ordered by product_id.
func (rm *ProductReadModel) All(ctx context.Context) ([]*domain.Product, error) {
	stmt := query.From(m_product.TableName).
		Select(m_product.Columns...).
		OrderBy(m_product.ProductID, query.Asc).
		Build()
	return rm.queryProducts(ctx, stmt, 0)
}

func (rm *ProductReadModel) queryProducts(ctx context.Context, stmt spanner.Statement, limit int) ([]*domain.Product, error) {
	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	products := make([]*domain.Product, 0, resultCapacity(limit))
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}

		product, err := dataToProduct(&data)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// countRows runs a COUNT(*) statement.
func countRows(ctx context.Context, client *spanner.Client, stmt spanner.Statement) (int, error) {
	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}

	var count int64
	if err := row.Column(0, &count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return int(count), nil
}
