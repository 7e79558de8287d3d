package place_order

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/clock"
	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
)

// Line is one requested product and quantity.
type Line struct {
	ProductID string
	Quantity  int64
}

// Request is a checkout by the signed-in user.
type Request struct {
	Username string
	Phone    string
	Address  string
	Lines    []Line
}

// Interactor handles the place order use case.
type Interactor struct {
	orders    contracts.OrderRepository
	products  contracts.ProductRepository
	committer committer.Applier
	session   contracts.SessionProvider
	clock     clock.Clock
}

// NewInteractor creates a new place order interactor.
func NewInteractor(
	orders contracts.OrderRepository,
	products contracts.ProductRepository,
	committer committer.Applier,
	session contracts.SessionProvider,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		orders:    orders,
		products:  products,
		committer: committer,
		session:   session,
		clock:     clock,
	}
}

// Execute snapshots the title, image and effective price of each product
// into a pending order and returns the order id.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	userID, err := i.session.CurrentUserID(ctx)
	if err != nil {
		return "", err
	}
	if len(req.Lines) == 0 {
		return "", domain.ErrEmptyOrder
	}

	orderID := uuid.New().String()
	err = i.committer.ApplyInTransaction(ctx, func(ctx context.Context, reader committer.RowReader) (*committer.CommitPlan, error) {
		items := make([]domain.OrderItem, 0, len(req.Lines))
		for _, line := range req.Lines {
			product, err := i.products.GetByIDWith(ctx, reader, line.ProductID)
			if err != nil {
				return nil, err
			}
			if !product.IsActive() {
				return nil, domain.ErrProductInactive
			}
			items = append(items, domain.OrderItem{
				ProductID:    product.ID(),
				ProductTitle: product.Title(),
				ProductImage: product.Image(),
				Price:        product.EffectivePrice(),
				Quantity:     line.Quantity,
			})
		}

		order, err := domain.NewOrder(orderID, userID, req.Username, req.Phone, req.Address, items, i.clock.Now())
		if err != nil {
			return nil, err
		}
		mut, err := i.orders.InsertMut(order)
		if err != nil {
			return nil, fmt.Errorf("failed to build insert: %w", err)
		}

		plan := committer.NewPlan()
		plan.Add(mut)
		return plan, nil
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}
