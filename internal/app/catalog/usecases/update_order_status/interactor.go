package update_order_status

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/clock"
	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
)

// Request moves an order to a new status.
type Request struct {
	OrderID string
	Status  string
}

// Interactor handles the update order status use case.
type Interactor struct {
	repo      contracts.OrderRepository
	committer committer.Applier
	notifier  contracts.Notifier
	clock     clock.Clock
	logger    *zap.Logger
}

// NewInteractor creates a new update order status interactor.
func NewInteractor(
	repo contracts.OrderRepository,
	committer committer.Applier,
	notifier contracts.Notifier,
	clock clock.Clock,
	logger *zap.Logger,
) *Interactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{
		repo:      repo,
		committer: committer,
		notifier:  notifier,
		clock:     clock,
		logger:    logger,
	}
}

// Execute commits the status change and then notifies the order owner.
// The notification is sent on its own goroutine: Execute neither waits for
// it nor retries it, and a failed delivery is only logged.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	next, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		return err
	}

	var events []domain.DomainEvent
	err = i.committer.ApplyInTransaction(ctx, func(ctx context.Context, reader committer.RowReader) (*committer.CommitPlan, error) {
		order, err := i.repo.GetByIDWith(ctx, reader, req.OrderID)
		if err != nil {
			return nil, err
		}
		if err := order.ChangeStatus(next, i.clock.Now()); err != nil {
			return nil, err
		}
		events = order.DomainEvents()

		plan := committer.NewPlan()
		plan.Add(i.repo.UpdateMut(order))
		return plan, nil
	})
	if err != nil {
		return err
	}

	for _, event := range events {
		changed, ok := event.(*domain.OrderStatusChangedEvent)
		if !ok {
			continue
		}
		go i.notify(context.WithoutCancel(ctx), changed)
	}
	return nil
}

func (i *Interactor) notify(ctx context.Context, event *domain.OrderStatusChangedEvent) {
	err := i.notifier.Notify(ctx, contracts.Notification{
		UserID:  event.UserID,
		Title:   event.Title(),
		Message: event.Message(),
		OrderID: event.OrderID,
		Kind:    contracts.KindOrderStatusUpdate,
	})
	if err != nil {
		i.logger.Sugar().Warnw("failed to notify order owner",
			zap.String("orderId", event.OrderID),
			zap.String("userId", event.UserID),
			zap.Error(err),
		)
	}
}
