package add_review

import (
	"context"

	"github.com/google/uuid"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/clock"
	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
)

// Request is a rating left by the signed-in user.
type Request struct {
	ProductID string
	Rating    float64
	Comment   string
}

// Interactor handles the add review use case.
type Interactor struct {
	repo      contracts.ProductRepository
	committer committer.Applier
	session   contracts.SessionProvider
	clock     clock.Clock
}

// NewInteractor creates a new add review interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	committer committer.Applier,
	session contracts.SessionProvider,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:      repo,
		committer: committer,
		session:   session,
		clock:     clock,
	}
}

// Execute stamps the review with the current user and appends it to the
// product in one read-write transaction. It returns the new review id.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	userID, err := i.session.CurrentUserID(ctx)
	if err != nil {
		return "", err
	}

	now := i.clock.Now()
	review, err := domain.NewReview(uuid.New().String(), userID, req.Rating, req.Comment, now)
	if err != nil {
		return "", err
	}

	err = i.committer.ApplyInTransaction(ctx, func(ctx context.Context, reader committer.RowReader) (*committer.CommitPlan, error) {
		product, err := i.repo.GetByIDWith(ctx, reader, req.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsActive() {
			return nil, domain.ErrProductInactive
		}
		if err := product.AddReview(review, now); err != nil {
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
	if err != nil {
		return "", err
	}
	return review.ReviewID, nil
}
