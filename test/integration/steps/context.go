// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/client/config"
	"github.com/finance-tracker/client/internal/infra/dependency"
	"github.com/finance-tracker/client/test/integration/mock"
)

// Remote finance API paths, relative to the mock server.
const (
	apiPrefix        = "/api"
	pathTransactions = apiPrefix + "/transactions/"
	pathCategories   = apiPrefix + "/categories/"
	pathDefaults     = apiPrefix + "/categories/create-defaults"
	pathByCategory   = apiPrefix + "/transactions/stats/by-category"
	pathTrends       = apiPrefix + "/transactions/stats/trends"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// Collaborators
	api      *mock.ApiMock
	db       *mock.Db
	redis    *mock.Redis
	injector *dependency.Injector

	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string
	saved          map[string]string

	cfg *config.Config
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		mock.NewDb()
		mock.NewRedis()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil {
			tc.close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerFinanceAPISteps(ctx)
	registerStateSteps(ctx)
}

func newTestContext() (*TestContext, error) {
	tc := &TestContext{
		api:            mock.NewApiServer(),
		db:             mock.NewDb(),
		redis:          mock.NewRedis(),
		requestHeaders: make(map[string]string),
		saved:          make(map[string]string),
		cfg:            config.Load(),
	}

	if err := tc.db.ClearDB(); err != nil {
		return nil, fmt.Errorf("failed to clear database: %w", err)
	}
	if err := tc.redis.Clear(); err != nil {
		return nil, fmt.Errorf("failed to clear redis: %w", err)
	}

	tc.api.Start()
	tc.seedEmptyFinanceAPI()

	tc.cfg.FinanceAPI.BaseURL = tc.api.GetUrl() + apiPrefix
	tc.cfg.FinanceAPI.RateLimit = 0
	tc.cfg.RateLimit.Enabled = false
	tc.cfg.History.Enabled = true
	tc.cfg.History.Retention = 0

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tc.injector = dependency.NewInjector(tc.cfg, tc.db.DbConn, tc.redis.Client, nil, logger)
	tc.engine = tc.injector.Router.Setup("test")
	tc.server = httptest.NewServer(tc.engine)

	return tc, nil
}

// seedEmptyFinanceAPI answers every read endpoint with an empty result.
func (tc *TestContext) seedEmptyFinanceAPI() {
	tc.api.SetResponse(-1, http.MethodPost, pathDefaults, http.StatusOK, []any{})
	tc.api.SetResponse(-1, http.MethodGet, pathCategories, http.StatusOK, []any{})
	tc.api.SetResponse(-1, http.MethodGet, pathTransactions, http.StatusOK, []any{})
	tc.api.SetResponse(-1, http.MethodGet, pathByCategory, http.StatusOK, []any{})
	tc.api.SetResponse(-1, http.MethodGet, pathTrends, http.StatusOK, map[string]any{"periods": []any{}})
}

func (tc *TestContext) close() {
	if tc.server != nil {
		tc.server.Close()
	}
	if tc.injector != nil {
		tc.injector.Close()
	}
	tc.api.Close()
}
