// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/client/config"
	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/application/store"
	"github.com/finance-tracker/client/internal/application/usecase/category"
	"github.com/finance-tracker/client/internal/application/usecase/dashboard"
	"github.com/finance-tracker/client/internal/application/usecase/transaction"
	"github.com/finance-tracker/client/internal/domain/entity"
	"github.com/finance-tracker/client/internal/infra/metrics"
	"github.com/finance-tracker/client/internal/infra/server/router"
	"github.com/finance-tracker/client/internal/integration/adapters"
	"github.com/finance-tracker/client/internal/integration/cache"
	"github.com/finance-tracker/client/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/client/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/client/internal/integration/history"
	"github.com/finance-tracker/client/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config  *config.Config
	Store   *store.Store
	History *history.Worker // nil when sync history is disabled
	Metrics *metrics.Recorder
	Router  *router.Router

	RateLimiter *middleware.RateLimiter // nil when rate limiting is disabled

	unsubscribe func()
}

// NewInjector creates a new dependency injector with all dependencies wired.
// db may be nil, which disables sync history. api overrides the HTTP finance
// API client when non-nil.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, api adapter.FinanceAPI, logger *slog.Logger) *Injector {
	if logger == nil {
		logger = slog.Default()
	}

	recorder := metrics.NewRecorder()

	// Create the finance API client and the state store
	if api == nil {
		api = adapters.NewFinanceAPIClient(adapters.FinanceAPIClientConfig{
			BaseURL:      cfg.FinanceAPI.BaseURL,
			Timeout:      cfg.FinanceAPI.Timeout,
			RateLimit:    cfg.FinanceAPI.RateLimit,
			Burst:        cfg.FinanceAPI.Burst,
			UserAgent:    cfg.FinanceAPI.UserAgent,
			DefaultLimit: cfg.FinanceAPI.DefaultLimit,
		}, recorder, logger)
	}

	stateStore := store.New(api, store.Options{
		Trends: entity.TrendsQuery{
			NumPeriods: cfg.Store.TrendPeriods,
			PeriodDays: cfg.Store.TrendPeriodDays,
		},
		DefaultRangeDays: cfg.Store.DefaultRangeDays,
		Metrics:          recorder,
		Logger:           logger,
	})

	// Create repositories
	viewRepo := cache.NewViewStateRepository(redisClient, cfg.Redis.ViewTTL)

	var syncRunRepo adapter.SyncRunRepository
	var worker *history.Worker
	var unsubscribe func()
	if db != nil && cfg.History.Enabled {
		syncRunRepo = persistence.NewSyncRunRepository(db)
		worker = history.NewWorker(syncRunRepo, history.WorkerConfig{
			FlushInterval: cfg.History.FlushInterval,
			BatchSize:     cfg.History.BatchSize,
			BufferSize:    cfg.History.BufferSize,
			Retention:     cfg.History.Retention,
		}, logger)
		unsubscribe = stateStore.Subscribe(func(e store.Event) {
			worker.Record(e.SyncRun())
		})
	}

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(stateStore)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(stateStore)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(stateStore)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(stateStore)
	importTransactionsUseCase := transaction.NewImportTransactionsUseCase(stateStore)

	// Create view use cases
	createViewUseCase := transaction.NewCreateViewUseCase(viewRepo, listTransactionsUseCase)
	getViewUseCase := transaction.NewGetViewUseCase(viewRepo, listTransactionsUseCase)
	updateViewUseCase := transaction.NewUpdateViewUseCase(viewRepo, listTransactionsUseCase)
	deleteViewUseCase := transaction.NewDeleteViewUseCase(viewRepo)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(stateStore)
	createCategoryUseCase := category.NewCreateCategoryUseCase(stateStore, stateStore)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(stateStore, stateStore)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(stateStore, stateStore)

	// Create dashboard use cases
	summaryUseCase := dashboard.NewGetSummaryUseCase(stateStore)
	analysisUseCase := dashboard.NewGetSpendingAnalysisUseCase(stateStore)

	// Create controllers
	var dbHealthChecker func() bool
	if db != nil {
		dbHealthChecker = func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}
	}
	redisHealthChecker := func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return redisClient.Ping(ctx).Err() == nil
	}

	controllers := router.Controllers{
		Health: controller.NewHealthController(dbHealthChecker, redisHealthChecker, func() bool {
			return stateStore.Snapshot().Initialized
		}),
		Snapshot: controller.NewSnapshotController(stateStore),
		Transaction: controller.NewTransactionController(
			listTransactionsUseCase,
			createTransactionUseCase,
			updateTransactionUseCase,
			deleteTransactionUseCase,
			importTransactionsUseCase,
		),
		Category: controller.NewCategoryController(
			listCategoriesUseCase,
			createCategoryUseCase,
			updateCategoryUseCase,
			deleteCategoryUseCase,
		),
		Dashboard: controller.NewDashboardController(summaryUseCase, analysisUseCase),
		View: controller.NewViewController(
			createViewUseCase,
			getViewUseCase,
			updateViewUseCase,
			deleteViewUseCase,
		),
		SyncRun: controller.NewSyncRunController(syncRunRepo),
	}

	// Create middleware
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiterWithConfig(
			cfg.RateLimit.RequestsPerSecond,
			cfg.RateLimit.Burst,
			cfg.RateLimit.IdleTimeout,
		)
	}

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = recorder.Handler()
	}

	// Create router
	r := router.NewRouter(controllers, rateLimiter, cfg.Metrics.Path, metricsHandler)

	return &Injector{
		Config:      cfg,
		Store:       stateStore,
		History:     worker,
		Metrics:     recorder,
		Router:      r,
		RateLimiter: rateLimiter,
		unsubscribe: unsubscribe,
	}
}

// Close detaches the history worker from the store and closes the store.
func (i *Injector) Close() {
	if i.unsubscribe != nil {
		i.unsubscribe()
	}
	i.Store.Close()
}
