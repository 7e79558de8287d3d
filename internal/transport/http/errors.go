package http

import (
	"errors"
	"net/http"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
	"github.com/light-bringer/shopcat-service/internal/pkg/session"
)

// errorStatuses maps known errors to HTTP status codes. First match wins.
var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrProductNotFound, http.StatusNotFound},
	{domain.ErrReviewNotFound, http.StatusNotFound},
	{domain.ErrOrderNotFound, http.StatusNotFound},
	{contracts.ErrNotificationNotFound, http.StatusNotFound},

	{domain.ErrEmptyTitle, http.StatusBadRequest},
	{domain.ErrInvalidCategory, http.StatusBadRequest},
	{domain.ErrInvalidPrice, http.StatusBadRequest},
	{domain.ErrInvalidDiscount, http.StatusBadRequest},
	{domain.ErrInvalidStock, http.StatusBadRequest},
	{domain.ErrInvalidStatus, http.StatusBadRequest},
	{domain.ErrNothingToUpdate, http.StatusBadRequest},
	{domain.ErrInvalidRating, http.StatusBadRequest},
	{domain.ErrEmptyReviewer, http.StatusBadRequest},
	{domain.ErrEmptyOrder, http.StatusBadRequest},
	{domain.ErrInvalidOrderItem, http.StatusBadRequest},
	{domain.ErrInvalidOrderStatus, http.StatusBadRequest},
	{paging.ErrInvalidRequest, http.StatusBadRequest},

	{domain.ErrProductInactive, http.StatusConflict},
	{domain.ErrInvalidStatusTransition, http.StatusConflict},

	{session.ErrUnauthenticated, http.StatusUnauthorized},
}

// statusFor returns the status for err and the message safe to show the
// client. Unknown errors become a generic 500.
func statusFor(err error) (int, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.err.Error()
		}
	}
	return http.StatusInternalServerError, "internal server error"
}
