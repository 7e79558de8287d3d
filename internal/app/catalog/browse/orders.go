package browse

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/update_order_status"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
)

// OrderBrowser is the admin order list, newest first.
type OrderBrowser struct {
	*paging.Controller[*domain.Order]

	updateStatus *update_order_status.Interactor
}

// NewOrderBrowser creates an idle browser.
func NewOrderBrowser(
	strategy paging.Strategy[*domain.Order],
	pageSize int,
	updateStatus *update_order_status.Interactor,
	logger *zap.Logger,
) *OrderBrowser {
	return &OrderBrowser{
		Controller:   paging.NewController(strategy, pageSize, logger),
		updateStatus: updateStatus,
	}
}

// ShowStatus narrows the list to orders in status. An empty status shows all
// orders.
func (b *OrderBrowser) ShowStatus(ctx context.Context, status string) bool {
	return b.SetFilter(ctx, paging.StatusFilter(status))
}

// ChangeStatus moves orderID to status and reloads the list.
func (b *OrderBrowser) ChangeStatus(ctx context.Context, orderID, status string) bool {
	return b.Mutate(ctx, func(ctx context.Context) error {
		return b.updateStatus.Execute(ctx, &update_order_status.Request{OrderID: orderID, Status: status})
	})
}
