package m_order

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data is one row of the orders table.
type Data struct {
	OrderID    string           `spanner:"order_id"`
	UserID     string           `spanner:"user_id"`
	Username   string           `spanner:"username"`
	Phone      string           `spanner:"phone"`
	Address    string           `spanner:"address"`
	Items      spanner.NullJSON `spanner:"items"`
	TotalPrice big.Rat          `spanner:"total_price"`
	Status     string           `spanner:"status"`
	CreatedAt  time.Time        `spanner:"created_at"`
	UpdatedAt  time.Time        `spanner:"updated_at"`
}

// ItemDoc is one element of the items JSON array. Price is a decimal string.
type ItemDoc struct {
	ProductID    string `json:"productId"`
	ProductTitle string `json:"productTitle"`
	ProductImage string `json:"productImage"`
	Price        string `json:"price"`
	Quantity     int64  `json:"quantity"`
}
