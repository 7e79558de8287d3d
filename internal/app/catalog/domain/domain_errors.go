package domain

import "errors"

var (
	// Product errors
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyTitle      = errors.New("product title cannot be empty")
	ErrInvalidCategory = errors.New("product category cannot be empty")
	ErrInvalidPrice    = errors.New("product price cannot be negative")
	ErrInvalidDiscount = errors.New("discount percentage must be between 0 and 100")
	ErrInvalidStock    = errors.New("stock and sales cannot be negative")
	ErrInvalidStatus   = errors.New("unknown product status")
	ErrNothingToUpdate = errors.New("no fields to update")
	ErrProductInactive = errors.New("product is not active")

	// Review errors
	ErrReviewNotFound = errors.New("review not found")
	ErrInvalidRating  = errors.New("rating must be between 0.0 and 5.0")
	ErrEmptyReviewer  = errors.New("review must have an author")

	// Order errors
	ErrOrderNotFound           = errors.New("order not found")
	ErrEmptyOrder              = errors.New("order must contain at least one item")
	ErrInvalidOrderItem        = errors.New("order item must have a product and a positive quantity")
	ErrInvalidOrderStatus      = errors.New("unknown order status")
	ErrInvalidStatusTransition = errors.New("order status transition not allowed")
)
