package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/browse"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/queries/list_categories"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/queries/list_orders"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/queries/search_products"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/repo"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/add_review"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/place_order"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/remove_review"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/update_order_status"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/shopcat-service/internal/config"
	"github.com/light-bringer/shopcat-service/internal/metrics"
	"github.com/light-bringer/shopcat-service/internal/pkg/clock"
	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
	"github.com/light-bringer/shopcat-service/internal/pkg/session"
	httptransport "github.com/light-bringer/shopcat-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	HTTPHandler   *httptransport.Handler
	Notifications *repo.NotificationRepo

	cfg             *config.Config
	logger          *zap.Logger
	productFetcher  paging.PageFetcher[*domain.Product]
	orderFetcher    paging.PageFetcher[*domain.Order]
	getProduct      *get_product.Query
	listCategories  *list_categories.Query
	productCommands browse.ProductCommands
	orderStatus     *update_order_status.Interactor
}

// NewServiceOptions creates and wires up all application dependencies.
// Metrics are registered on reg when cfg enables them; reg may be nil
// otherwise.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger, reg prometheus.Registerer) (*ServiceOptions, error) {
	mode, err := browse.ParseMode(cfg.Paging.Mode)
	if err != nil {
		return nil, err
	}

	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	sess := session.NewContextProvider()

	var (
		fetchOpts []paging.FetcherOption
		observer  httptransport.MutationObserver
	)
	if cfg.Metrics.Enabled {
		recorder, err := metrics.NewRecorder(reg, logger)
		if err != nil {
			spannerClient.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		fetchOpts = append(fetchOpts, paging.WithRecorder(recorder))
		observer = recorder
	}

	// 3. Create repositories
	productRepo := repo.NewProductRepo(spannerClient)
	productReader := repo.NewProductReadModel(spannerClient)
	orderRepo := repo.NewOrderRepo()
	orderReader := repo.NewOrderReadModel(spannerClient)
	notifications := repo.NewNotificationRepo(spannerClient)

	productFetcher := browse.NewFetcher[*domain.Product](productReader, mode, logger, fetchOpts...)
	orderFetcher := browse.NewFetcher[*domain.Order](orderReader, mode, logger, fetchOpts...)

	// 4. Create command use cases (write operations)
	cmds := browse.ProductCommands{
		Create:       create_product.NewInteractor(productRepo, comm, clk),
		Update:       update_product.NewInteractor(productRepo, comm, clk),
		Delete:       delete_product.NewInteractor(productRepo, comm),
		AddReview:    add_review.NewInteractor(productRepo, comm, sess, clk),
		RemoveReview: remove_review.NewInteractor(productRepo, comm, clk),
	}
	placeOrder := place_order.NewInteractor(orderRepo, productRepo, comm, sess, clk)
	orderStatus := update_order_status.NewInteractor(orderRepo, comm, notifications, clk, logger)

	// 5. Create query use cases (read operations)
	getProduct := get_product.NewQuery(productReader)
	listCategories := list_categories.NewQuery(productReader)

	// 6. Create HTTP handler
	handler := httptransport.NewHandler(httptransport.Options{
		CreateProduct:     cmds.Create,
		UpdateProduct:     cmds.Update,
		DeleteProduct:     cmds.Delete,
		AddReview:         cmds.AddReview,
		RemoveReview:      cmds.RemoveReview,
		PlaceOrder:        placeOrder,
		UpdateOrderStatus: orderStatus,
		GetProduct:        getProduct,
		ListProducts:      list_products.NewQuery(productFetcher),
		SearchProducts:    search_products.NewQuery(productReader),
		ListCategories:    listCategories,
		ListOrders:        list_orders.NewQuery(orderFetcher),
		Inbox:             notifications,
		Observer:          observer,
		Logger:            logger,
	})

	return &ServiceOptions{
		SpannerClient:   spannerClient,
		HTTPHandler:     handler,
		Notifications:   notifications,
		cfg:             cfg,
		logger:          logger,
		productFetcher:  productFetcher,
		orderFetcher:    orderFetcher,
		getProduct:      getProduct,
		listCategories:  listCategories,
		productCommands: cmds,
		orderStatus:     orderStatus,
	}, nil
}

// NewProductBrowser creates a product list for one interactive session.
func (s *ServiceOptions) NewProductBrowser() *browse.ProductBrowser {
	return browse.NewProductBrowser(
		paging.Paginated(s.productFetcher),
		s.cfg.Paging.PageSize,
		s.getProduct,
		s.productCommands,
		s.logger,
	)
}

// NewCategoryBrowser creates a category picker for one interactive session.
func (s *ServiceOptions) NewCategoryBrowser() *browse.CategoryBrowser {
	return browse.NewCategoryBrowser(s.listCategories, s.logger)
}

// NewOrderBrowser creates an order list for one interactive session.
func (s *ServiceOptions) NewOrderBrowser() *browse.OrderBrowser {
	return browse.NewOrderBrowser(
		paging.Paginated(s.orderFetcher),
		s.cfg.Paging.PageSize,
		s.orderStatus,
		s.logger,
	)
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
