// Package adapters provides implementations for external service integrations.
package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

// RequestIDHeader carries the correlation ID of every outbound call.
const RequestIDHeader = "X-Request-ID"

// FinanceAPIClientConfig configures the finance API client.
type FinanceAPIClientConfig struct {
	BaseURL      string // Including the /api prefix
	Timeout      time.Duration
	RateLimit    float64 // Requests per second; 0 disables throttling
	Burst        int
	UserAgent    string
	DefaultLimit int // Page size sent when a transaction query sets none
}

// requestTransport stamps every outbound request with a request ID and the
// client's user agent.
type requestTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *requestTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	return t.base.RoundTrip(req)
}

// FinanceAPIClient implements adapter.FinanceAPI over HTTP.
type FinanceAPIClient struct {
	baseURL      string
	defaultLimit int
	client       *http.Client
	limiter      *rate.Limiter
	metrics      adapter.MetricsRecorder
	logger       *slog.Logger
}

// NewFinanceAPIClient creates a new finance API client.
func NewFinanceAPIClient(cfg FinanceAPIClientConfig, metrics adapter.MetricsRecorder, logger *slog.Logger) *FinanceAPIClient {
	if metrics == nil {
		metrics = adapter.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.Burst, 1))
	}

	return &FinanceAPIClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		defaultLimit: cfg.DefaultLimit,
		client: &http.Client{
			Transport: &requestTransport{userAgent: cfg.UserAgent, base: http.DefaultTransport},
			Timeout:   timeout,
		},
		limiter: limiter,
		metrics: metrics,
		logger:  logger.With("component", "finance_api"),
	}
}

var _ adapter.FinanceAPI = (*FinanceAPIClient)(nil)

type request struct {
	operation   string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func (c *FinanceAPIClient) jsonRequest(operation, method, path string, payload any) (request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("marshal request body: %w", err)
	}
	return request{
		operation:   operation,
		method:      method,
		path:        path,
		body:        bytes.NewReader(b),
		contentType: "application/json",
	}, nil
}

// call performs r and decodes a successful body into out when out is not nil.
func (c *FinanceAPIClient) call(ctx context.Context, r request, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return domainerror.NewRemoteError(
			domainerror.ErrCodeRemoteTimeout,
			"request abandoned while waiting for the rate limiter",
			err,
		)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.ObserveRemoteCall(r.operation, 0, time.Since(started))
		c.logger.Error("Finance API request failed",
			"operation", r.operation,
			"method", r.method,
			"url", req.URL.String(),
			"error", err,
		)
		return transportError(err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	c.metrics.ObserveRemoteCall(r.operation, resp.StatusCode, time.Since(started))
	if err != nil {
		return domainerror.NewRemoteError(
			domainerror.ErrCodeRemoteUnavailable,
			"failed to read finance API response",
			fmt.Errorf("%w: %w", domainerror.ErrRemoteUnavailable, err),
		)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		remoteErr := domainerror.NewRemoteStatusError(resp.StatusCode, parseDetail(body))
		c.logger.Warn("Finance API rejected request",
			"operation", r.operation,
			"status", resp.StatusCode,
			"detail", remoteErr.Detail,
		)
		return remoteErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return domainerror.NewRemoteError(
			domainerror.ErrCodeMalformedResponse,
			"malformed finance API response",
			fmt.Errorf("%w: %w", domainerror.ErrMalformedResponse, err),
		)
	}
	return nil
}

func transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domainerror.NewRemoteError(
			domainerror.ErrCodeRemoteTimeout,
			"finance API timed out",
			fmt.Errorf("%w: %w", domainerror.ErrRemoteUnavailable, err),
		)
	}
	return domainerror.NewRemoteError(
		domainerror.ErrCodeRemoteUnavailable,
		"finance API unreachable",
		fmt.Errorf("%w: %w", domainerror.ErrRemoteUnavailable, err),
	)
}

// ListTransactions fetches transactions. Unset query fields are omitted.
func (c *FinanceAPIClient) ListTransactions(ctx context.Context, query adapter.TransactionQuery) ([]entity.Transaction, error) {
	params := url.Values{}
	if query.Skip > 0 {
		params.Set("skip", strconv.Itoa(query.Skip))
	}
	limit := query.Limit
	if limit <= 0 {
		limit = c.defaultLimit
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	setDate(params, "start_date", query.StartDate)
	setDate(params, "end_date", query.EndDate)
	if query.CategoryID != nil {
		params.Set("category_id", strconv.FormatInt(*query.CategoryID, 10))
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		params.Set("search", search)
	}
	if query.IsExpense != nil {
		params.Set("is_expense", strconv.FormatBool(*query.IsExpense))
	}

	var items []apiTransaction
	err := c.call(ctx, request{
		operation: "list_transactions",
		method:    http.MethodGet,
		path:      "/transactions/",
		query:     params,
	}, &items)
	if err != nil {
		return nil, err
	}
	return toTransactions(items), nil
}

// ListCategories fetches every category.
func (c *FinanceAPIClient) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var items []apiCategory
	err := c.call(ctx, request{
		operation: "list_categories",
		method:    http.MethodGet,
		path:      "/categories/",
	}, &items)
	if err != nil {
		return nil, err
	}
	return toCategories(items), nil
}

// CreateDefaultCategories asks the API to create the missing default categories.
func (c *FinanceAPIClient) CreateDefaultCategories(ctx context.Context) ([]entity.Category, error) {
	var items []apiCategory
	err := c.call(ctx, request{
		operation: "create_default_categories",
		method:    http.MethodPost,
		path:      "/categories/create-defaults",
	}, &items)
	if err != nil {
		return nil, err
	}
	return toCategories(items), nil
}

// SpendingByCategory fetches the expense breakdown for dateRange. A nil bound
// is left out of the query.
func (c *FinanceAPIClient) SpendingByCategory(ctx context.Context, dateRange entity.DateRange) ([]entity.CategoryBreakdownEntry, error) {
	params := url.Values{}
	setDate(params, "start_date", dateRange.StartDate)
	setDate(params, "end_date", dateRange.EndDate)

	var items []apiBreakdownEntry
	err := c.call(ctx, request{
		operation: "spending_by_category",
		method:    http.MethodGet,
		path:      "/transactions/stats/by-category",
		query:     params,
	}, &items)
	if err != nil {
		return nil, err
	}

	result := make([]entity.CategoryBreakdownEntry, 0, len(items))
	for _, item := range items {
		result = append(result, entity.CategoryBreakdownEntry{
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			Total:        item.Total,
		})
	}
	return result, nil
}

// SpendingTrends fetches spending per period.
func (c *FinanceAPIClient) SpendingTrends(ctx context.Context, query entity.TrendsQuery) (*entity.Trends, error) {
	params := url.Values{}
	if query.NumPeriods > 0 {
		params.Set("num_periods", strconv.Itoa(query.NumPeriods))
	}
	if query.PeriodDays > 0 {
		params.Set("period_days", strconv.Itoa(query.PeriodDays))
	}

	var trends apiTrends
	err := c.call(ctx, request{
		operation: "spending_trends",
		method:    http.MethodGet,
		path:      "/transactions/stats/trends",
		query:     params,
	}, &trends)
	if err != nil {
		return nil, err
	}
	return trends.toEntity(), nil
}

// ImportFile uploads a bank statement as multipart field "file".
func (c *FinanceAPIClient) ImportFile(ctx context.Context, file entity.ImportFile) ([]entity.Transaction, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	var items []apiTransaction
	err = c.call(ctx, request{
		operation:   "import_file",
		method:      http.MethodPost,
		path:        "/imports/file",
		body:        &buf,
		contentType: writer.FormDataContentType(),
	}, &items)
	if err != nil {
		return nil, err
	}
	return toTransactions(items), nil
}

// CreateTransaction creates a transaction.
func (c *FinanceAPIClient) CreateTransaction(ctx context.Context, input entity.TransactionInput) (*entity.Transaction, error) {
	r, err := c.jsonRequest("create_transaction", http.MethodPost, "/transactions/", newTransactionRequest(input))
	if err != nil {
		return nil, err
	}

	var item apiTransaction
	if err := c.call(ctx, r, &item); err != nil {
		return nil, err
	}
	txn := item.toEntity()
	return &txn, nil
}

// UpdateTransaction replaces the writable fields of a transaction.
func (c *FinanceAPIClient) UpdateTransaction(ctx context.Context, id int64, input entity.TransactionInput) (*entity.Transaction, error) {
	r, err := c.jsonRequest("update_transaction", http.MethodPut, "/transactions/"+strconv.FormatInt(id, 10), newTransactionRequest(input))
	if err != nil {
		return nil, err
	}

	var item apiTransaction
	if err := c.call(ctx, r, &item); err != nil {
		return nil, err
	}
	txn := item.toEntity()
	return &txn, nil
}

// DeleteTransaction deletes a transaction.
func (c *FinanceAPIClient) DeleteTransaction(ctx context.Context, id int64) error {
	return c.call(ctx, request{
		operation: "delete_transaction",
		method:    http.MethodDelete,
		path:      "/transactions/" + strconv.FormatInt(id, 10),
	}, nil)
}

// CreateCategory creates a category.
func (c *FinanceAPIClient) CreateCategory(ctx context.Context, input entity.CategoryInput) (*entity.Category, error) {
	r, err := c.jsonRequest("create_category", http.MethodPost, "/categories/", newCategoryRequest(input))
	if err != nil {
		return nil, err
	}

	var item apiCategory
	if err := c.call(ctx, r, &item); err != nil {
		return nil, err
	}
	category := item.toEntity()
	return &category, nil
}

// UpdateCategory updates a category.
func (c *FinanceAPIClient) UpdateCategory(ctx context.Context, id int64, input entity.CategoryInput) (*entity.Category, error) {
	r, err := c.jsonRequest("update_category", http.MethodPut, "/categories/"+strconv.FormatInt(id, 10), newCategoryRequest(input))
	if err != nil {
		return nil, err
	}

	var item apiCategory
	if err := c.call(ctx, r, &item); err != nil {
		return nil, err
	}
	category := item.toEntity()
	return &category, nil
}

// DeleteCategory deletes a category, optionally moving its transactions.
func (c *FinanceAPIClient) DeleteCategory(ctx context.Context, id int64, reassignTo *int64) error {
	params := url.Values{}
	if reassignTo != nil {
		params.Set("reassign_to_id", strconv.FormatInt(*reassignTo, 10))
	}
	return c.call(ctx, request{
		operation: "delete_category",
		method:    http.MethodDelete,
		path:      "/categories/" + strconv.FormatInt(id, 10),
		query:     params,
	}, nil)
}

func toCategories(items []apiCategory) []entity.Category {
	result := make([]entity.Category, 0, len(items))
	for _, item := range items {
		result = append(result, item.toEntity())
	}
	return result
}

func setDate(params url.Values, key string, t *time.Time) {
	if t != nil {
		params.Set(key, t.Format(entity.DayLayout))
	}
}
