package m_product

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data is one row of the products table.
type Data struct {
	ProductID   string           `spanner:"product_id"`
	Title       string           `spanner:"title"`
	Image       string           `spanner:"image"`
	Images      []string         `spanner:"images"`
	Price       big.Rat          `spanner:"price"`
	Description string           `spanner:"description"`
	Brand       string           `spanner:"brand"`
	Model       string           `spanner:"model"`
	Color       string           `spanner:"color"`
	Category    string           `spanner:"category"`
	Popular     bool             `spanner:"popular"`
	Discount    big.Rat          `spanner:"discount"`
	Stock       int64            `spanner:"stock"`
	Sales       int64            `spanner:"sales"`
	Status      string           `spanner:"status"`
	Reviews     spanner.NullJSON `spanner:"reviews"`
	CreatedAt   time.Time        `spanner:"created_at"`
	UpdatedAt   time.Time        `spanner:"updated_at"`
}

// ReviewDoc is one element of the embedded reviews JSON array.
type ReviewDoc struct {
	ReviewID  string    `json:"reviewId"`
	UserID    string    `json:"userId"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
