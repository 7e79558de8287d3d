package remove_review

import (
	"context"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/pkg/clock"
	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
)

// Request identifies the review to remove.
type Request struct {
	ProductID string
	ReviewID  string
}

// Interactor handles the remove review use case.
type Interactor struct {
	repo      contracts.ProductRepository
	committer committer.Applier
	clock     clock.Clock
}

// NewInteractor creates a new remove review interactor.
func NewInteractor(repo contracts.ProductRepository, committer committer.Applier, clock clock.Clock) *Interactor {
	return &Interactor{repo: repo, committer: committer, clock: clock}
}

// Execute deletes the review from its product in one read-write transaction.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	return i.committer.ApplyInTransaction(ctx, func(ctx context.Context, reader committer.RowReader) (*committer.CommitPlan, error) {
		product, err := i.repo.GetByIDWith(ctx, reader, req.ProductID)
		if err != nil {
			return nil, err
		}
		if err := product.RemoveReview(req.ReviewID, i.clock.Now()); err != nil {
			return nil, err
		}

		mut, err := i.repo.UpdateMut(product)
		if err != nil {
			return nil, err
		}
		plan := committer.NewPlan()
		plan.Add(mut)
		return plan, nil
	})
}
