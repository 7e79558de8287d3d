package delete_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
)

// Request identifies the product to delete.
type Request struct {
	ProductID string
}

// Interactor handles the delete product use case.
type Interactor struct {
	repo      contracts.ProductRepository
	committer committer.Applier
}

// NewInteractor creates a new delete product interactor.
func NewInteractor(repo contracts.ProductRepository, committer committer.Applier) *Interactor {
	return &Interactor{repo: repo, committer: committer}
}

// Execute removes the product together with its embedded reviews.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	exists, err := i.repo.Exists(ctx, req.ProductID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrProductNotFound
	}

	plan := committer.NewPlan()
	plan.Add(i.repo.DeleteMut(req.ProductID))

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
