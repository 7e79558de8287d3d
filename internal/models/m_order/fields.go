package m_order

// Column names of the orders table.
const (
	TableName = "orders"

	OrderID    = "order_id"
	UserID     = "user_id"
	Username   = "username"
	Phone      = "phone"
	Address    = "address"
	Items      = "items"
	TotalPrice = "total_price"
	Status     = "status"
	CreatedAt  = "created_at"
	UpdatedAt  = "updated_at"
)

// Columns lists every column in Data order.
var Columns = []string{
	OrderID, UserID, Username, Phone, Address, Items, TotalPrice, Status, CreatedAt, UpdatedAt,
}
