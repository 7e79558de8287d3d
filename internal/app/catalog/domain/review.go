package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Review is a rating left by a user. Reviews are embedded in their product.
type Review struct {
	ReviewID  string
	UserID    string
	Rating    float64
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReview validates and stamps a new review.
func NewReview(id, userID string, rating float64, comment string, now time.Time) (Review, error) {
	if userID == "" {
		return Review{}, ErrEmptyReviewer
	}
	if rating < MinRating || rating > MaxRating {
		return Review{}, ErrInvalidRating
	}
	return Review{
		ReviewID:  id,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rating summarizes a review list for display.
type Rating struct {
	// Average is the mean rating fixed to one decimal place, e.g. "4.5".
	Average string
	Count   int
}

// RecomputeRating aggregates reviews from scratch. An empty list yields
// "0.0" with a count of zero.
func RecomputeRating(reviews []Review) Rating {
	return Rating{
		Average: MeanRating(reviews).StringFixed(1),
		Count:   len(reviews),
	}
}

// MeanRating returns the unrounded mean, zero for no reviews.
func MeanRating(reviews []Review) decimal.Decimal {
	if len(reviews) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, r := range reviews {
		sum = sum.Add(decimal.NewFromFloat(r.Rating))
	}
	return sum.Div(decimal.NewFromInt(int64(len(reviews))))
}
