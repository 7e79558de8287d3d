package create_product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/clock"
	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
)

// Request contains the data needed to create a product.
type Request struct {
	Details domain.ProductDetails
}

// Interactor handles the create product use case.
type Interactor struct {
	repo      contracts.ProductRepository
	committer committer.Applier
	clock     clock.Clock
}

// NewInteractor creates a new create product interactor.
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

// Execute creates an active product and returns its id.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	product, err := domain.NewProduct(uuid.New().String(), req.Details, i.clock.Now())
	if err != nil {
		return "", err
	}

	mut, err := i.repo.InsertMut(product)
	if err != nil {
		return "", fmt.Errorf("failed to build insert: %w", err)
	}

	plan := committer.NewPlan()
	plan.Add(mut)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return product.ID(), nil
}
