package repo

import (
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/models/m_order"
	"github.com/light-bringer/shopcat-service/internal/models/m_product"
)

// maxPrealloc bounds the slice capacity reserved for a query result. The
// LIMIT of a cursor head scan grows with the requested page, so it must not
// size the allocation.
const maxPrealloc = 128

// resultCapacity is the capacity to reserve for a query limited to limit rows.
func resultCapacity(limit int) int {
	return max(0, min(limit, maxPrealloc))
}

// ratToDecimal converts a NUMERIC column value.
func ratToDecimal(r *big.Rat) (decimal.Decimal, error) {
	return decimal.NewFromString(spanner.NumericString(r))
}

// decimalToRat converts a decimal for a NUMERIC column.
func decimalToRat(d decimal.Decimal) *big.Rat {
	return d.Rat()
}

func reviewsToDocs(reviews []domain.Review) []m_product.ReviewDoc {
	return lo.Map(reviews, func(r domain.Review, _ int) m_product.ReviewDoc {
		return m_product.ReviewDoc{
			ReviewID:  r.ReviewID,
			UserID:    r.UserID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
	})
}

func docsToReviews(docs []m_product.ReviewDoc) []domain.Review {
	return lo.Map(docs, func(d m_product.ReviewDoc, _ int) domain.Review {
		return domain.Review{
			ReviewID:  d.ReviewID,
			UserID:    d.UserID,
			Rating:    d.Rating,
			Comment:   d.Comment,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		}
	})
}

// productToData converts a Product to a products row.
func productToData(p *domain.Product) *m_product.Data {
	data := &m_product.Data{
		ProductID:   p.ID(),
		Title:       p.Title(),
		Image:       p.Image(),
		Images:      p.Images(),
		Description: p.Description(),
		Brand:       p.Brand(),
		Model:       p.Model(),
		Color:       p.Color(),
		Category:    p.Category(),
		Popular:     p.Popular(),
		Stock:       p.Stock(),
		Sales:       p.Sales(),
		Status:      string(p.Status()),
		Reviews:     m_product.EncodeReviews(reviewsToDocs(p.Reviews())),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
	data.Price.Set(decimalToRat(p.Price()))
	data.Discount.Set(decimalToRat(p.Discount()))
	return data
}

// dataToProduct rebuilds a Product from a products row.
func dataToProduct(data *m_product.Data) (*domain.Product, error) {
	price, err := ratToDecimal(&data.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price for product %s: %w", data.ProductID, err)
	}
	discount, err := ratToDecimal(&data.Discount)
	if err != nil {
		return nil, fmt.Errorf("invalid discount for product %s: %w", data.ProductID, err)
	}
	docs, err := m_product.DecodeReviews(data)
	if err != nil {
		return nil, fmt.Errorf("invalid reviews for product %s: %w", data.ProductID, err)
	}

	details := domain.ProductDetails{
		Title:       data.Title,
		Image:       data.Image,
		Images:      data.Images,
		Price:       price,
		Description: data.Description,
		Brand:       data.Brand,
		Model:       data.Model,
		Color:       data.Color,
		Category:    data.Category,
		Popular:     data.Popular,
		Discount:    discount,
		Stock:       data.Stock,
		Sales:       data.Sales,
	}

	return domain.ReconstructProduct(
		data.ProductID,
		details,
		domain.ProductStatus(data.Status),
		docsToReviews(docs),
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}

func itemsToDocs(items []domain.OrderItem) []m_order.ItemDoc {
	return lo.Map(items, func(it domain.OrderItem, _ int) m_order.ItemDoc {
		return m_order.ItemDoc{
			ProductID:    it.ProductID,
			ProductTitle: it.ProductTitle,
			ProductImage: it.ProductImage,
			Price:        it.Price.String(),
			Quantity:     it.Quantity,
		}
	})
}

// dataToOrder rebuilds an Order from an orders row.
func dataToOrder(data *m_order.Data) (*domain.Order, error) {
	total, err := ratToDecimal(&data.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid total for order %s: %w", data.OrderID, err)
	}
	docs, err := m_order.DecodeItems(data)
	if err != nil {
		return nil, fmt.Errorf("invalid items for order %s: %w", data.OrderID, err)
	}

	items := make([]domain.OrderItem, 0, len(docs))
	for _, d := range docs {
		price, err := decimal.NewFromString(d.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid item price for order %s: %w", data.OrderID, err)
		}
		items = append(items, domain.OrderItem{
			ProductID:    d.ProductID,
			ProductTitle: d.ProductTitle,
			ProductImage: d.ProductImage,
			Price:        price,
			Quantity:     d.Quantity,
		})
	}

	return domain.ReconstructOrder(
		data.OrderID,
		data.UserID,
		data.Username,
		data.Phone,
		data.Address,
		items,
		total,
		domain.OrderStatus(data.Status),
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}
