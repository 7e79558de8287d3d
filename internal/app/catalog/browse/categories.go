package browse

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/queries/list_categories"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
)

// CategoryBrowser is the category picker of a product screen. The whole
// list is read in one call, so page navigation is refused.
type CategoryBrowser struct {
	*paging.Controller[string]
}

// NewCategoryBrowser creates an idle picker over list.
func NewCategoryBrowser(list *list_categories.Query, logger *zap.Logger) *CategoryBrowser {
	loader := paging.FullLoaderFunc[string](func(ctx context.Context, _ paging.Filter) ([]string, error) {
		return list.Execute(ctx)
	})
	return &CategoryBrowser{
		Controller: paging.NewController(paging.FullLoad[string](loader), 0, logger),
	}
}
