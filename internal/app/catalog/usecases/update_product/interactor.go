package update_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/clock"
	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
)

// Request contains the product to change and the fields to set.
type Request struct {
	ProductID string
	Patch     domain.ProductPatch
}

// Interactor handles the update product use case.
type Interactor struct {
	repo      contracts.ProductRepository
	committer committer.Applier
	clock     clock.Clock
}

// NewInteractor creates a new update product interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	committer committer.Applier,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:      repo,
		committer: committer,
		clock:     clock,
	}
}

// Execute applies the patch. Only the patched columns are written.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	product, err := i.repo.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}

	if err := product.Apply(req.Patch, i.clock.Now()); err != nil {
		return err
	}

	mut, err := i.repo.UpdateMut(product)
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	plan := committer.NewPlan()
	plan.Add(mut)
	if plan.IsEmpty() {
		return nil
	}

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
