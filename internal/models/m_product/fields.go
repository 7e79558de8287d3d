package m_product

// Column names of the products table.
const (
	TableName = "products"

	ProductID   = "product_id"
	Title       = "title"
	Image       = "image"
	Images      = "images"
	Price       = "price"
	Description = "description"
	Brand       = "brand"
	ModelColumn = "model"
	Color       = "color"
	Category    = "category"
	Popular     = "popular"
	Discount    = "discount"
	Stock       = "stock"
	Sales       = "sales"
	Status      = "status"
	Reviews     = "reviews"
	CreatedAt   = "created_at"
	UpdatedAt   = "updated_at"
)

// Columns lists every column in Data order.
var Columns = []string{
	ProductID, Title, Image, Images, Price, Description, Brand, ModelColumn, Color,
	Category, Popular, Discount, Stock, Sales, Status, Reviews, CreatedAt, UpdatedAt,
}
