package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/cucumber/godog"
)

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, iSaveTheResponseFieldAs)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
}

// registerFinanceAPISteps registers steps that script the remote finance API.
func registerFinanceAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the finance API has the categories:$`, theFinanceAPIHasTheCategories)
	ctx.Step(`^the finance API has the transactions:$`, theFinanceAPIHasTheTransactions)
	ctx.Step(`^the finance API has (\d+) random expenses on "([^"]*)"$`, theFinanceAPIHasRandomExpensesOn)
	ctx.Step(`^the finance API answers "([^"]*)" "([^"]*)" with status (\d+)$`, theFinanceAPIAnswersWithStatus)
	ctx.Step(`^the finance API answers "([^"]*)" "([^"]*)" with status (\d+) and body:$`, theFinanceAPIAnswersWithStatusAndBody)
	ctx.Step(`^the finance API answers call (\d+) to "([^"]*)" "([^"]*)" with status (\d+) and body:$`, theFinanceAPIAnswersCallWithStatusAndBody)
	ctx.Step(`^the finance API should have received (\d+) "([^"]*)" requests? to "([^"]*)"$`, theFinanceAPIShouldHaveReceivedRequests)
	ctx.Step(`^the finance API request (\d+) to "([^"]*)" "([^"]*)" should have the field "([^"]*)" equal to "([^"]*)"$`, theFinanceAPIRequestShouldHaveTheField)
	ctx.Step(`^the finance API request (\d+) to "([^"]*)" "([^"]*)" should have the query "([^"]*)" equal to "([^"]*)"$`, theFinanceAPIRequestShouldHaveTheQuery)
}

// registerStateSteps registers steps that drive the store and its history.
func registerStateSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the client has loaded its state$`, theClientHasLoadedItsState)
	ctx.Step(`^the sync history is flushed$`, theSyncHistoryIsFlushed)
	ctx.Step(`^the db should contain (\d+) sync runs? for "([^"]*)" with status "([^"]*)"$`, theDbShouldContainSyncRuns)
	ctx.Step(`^the view "([^"]*)" expires$`, theViewExpires)
}

// Step implementations

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	return sendRequest(ctx, method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	return sendRequest(ctx, method, endpoint, &body.Content)
}

func sendRequest(ctx context.Context, method, endpoint string, body *string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewBufferString(tc.replacePlaceholders(*body))
	}

	req, err := http.NewRequest(method, tc.server.URL+tc.replacePlaceholders(endpoint), reader)
	if err != nil {
		return ctx, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ctx, fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ctx, fmt.Errorf("failed to read response body: %w", err)
	}

	return SetTestContext(ctx, tc), nil
}

// replacePlaceholders substitutes {name} with values saved from earlier responses.
func (tc *TestContext) replacePlaceholders(content string) string {
	for name, value := range tc.saved {
		content = strings.ReplaceAll(content, "{"+name+"}", value)
	}
	return content
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return SetTestContext(ctx, tc), nil
}

func iSaveTheResponseFieldAs(ctx context.Context, field, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	value, err := tc.responseField(field)
	if err != nil {
		return err
	}
	tc.saved[name] = stringify(value)
	return nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	value, err := tc.responseField(field)
	if err != nil {
		return err
	}
	if actual := stringify(value); actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	_, err := tc.responseField(field)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	value, err := tc.responseField(field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		if value == nil && count == 0 {
			return nil
		}
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

// responseField resolves a dot separated path such as "groups.0.day".
func (tc *TestContext) responseField(field string) (any, error) {
	var data any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}
	value, ok := getFieldValue(data, field)
	if !ok {
		return nil, fmt.Errorf("field '%s' not found in response: %s", field, string(tc.responseBody))
	}
	return value, nil
}

func getFieldValue(object any, dotSeparatedField string) (any, bool) {
	current := object
	for _, part := range strings.Split(dotSeparatedField, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, false
			}
			current = value
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}
	return current, true
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Finance API steps

func theFinanceAPIHasTheCategories(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	categories := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row["id"], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid category id %q: %w", row["id"], err)
		}
		categories = append(categories, map[string]any{
			"id":          id,
			"name":        row["name"],
			"description": nil,
			"is_default":  row["is_default"] == "true",
			"created_at":  "2024-01-01T00:00:00",
			"updated_at":  "2024-01-01T00:00:00",
		})
	}
	tc.api.SetResponse(-1, http.MethodGet, pathCategories, http.StatusOK, categories)
	return nil
}

func theFinanceAPIHasTheTransactions(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	transactions := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row["id"], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid transaction id %q: %w", row["id"], err)
		}
		amount, err := strconv.ParseFloat(row["amount"], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", row["amount"], err)
		}
		var categoryID any
		if row["category_id"] != "" {
			parsed, err := strconv.ParseInt(row["category_id"], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q: %w", row["category_id"], err)
			}
			categoryID = parsed
		}
		isExpense := amount < 0
		if value, ok := row["is_expense"]; ok && value != "" {
			isExpense = value == "true"
		}
		transactions = append(transactions, apiTransaction(id, row["date"], amount, row["description"], isExpense, categoryID))
	}
	tc.api.SetResponse(-1, http.MethodGet, pathTransactions, http.StatusOK, transactions)
	return nil
}

func theFinanceAPIHasRandomExpensesOn(ctx context.Context, count int, day string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return fmt.Errorf("invalid day %q: %w", day, err)
	}

	transactions := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		amount := -math.Round(gofakeit.Float64Range(1, 500)*100) / 100
		transactions = append(transactions, apiTransaction(int64(i+1), day, amount, gofakeit.Company(), true, nil))
	}
	tc.api.SetResponse(-1, http.MethodGet, pathTransactions, http.StatusOK, transactions)
	return nil
}

func apiTransaction(id int64, day string, amount float64, description string, isExpense bool, categoryID any) map[string]any {
	return map[string]any{
		"id":                   id,
		"date":                 day + "T12:00:00",
		"amount":               amount,
		"description":          description,
		"is_expense":           isExpense,
		"source":               "manual",
		"category_id":          categoryID,
		"original_description": nil,
		"import_id":            nil,
		"category":             nil,
		"created_at":           day + "T12:00:00",
		"updated_at":           day + "T12:00:00",
	}
}

func theFinanceAPIAnswersWithStatus(ctx context.Context, method, path string, status int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.api.SetResponse(-1, method, path, status, nil)
	return nil
}

func theFinanceAPIAnswersWithStatusAndBody(ctx context.Context, method, path string, status int, body *godog.DocString) error {
	return answer(ctx, -1, method, path, status, body)
}

func theFinanceAPIAnswersCallWithStatusAndBody(ctx context.Context, call int, method, path string, status int, body *godog.DocString) error {
	return answer(ctx, call-1, method, path, status, body)
}

func answer(ctx context.Context, index int, method, path string, status int, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var response any
	if err := json.Unmarshal([]byte(body.Content), &response); err != nil {
		return fmt.Errorf("failed to parse response body: %w", err)
	}
	tc.api.SetResponse(index, method, path, status, response)
	return nil
}

func theFinanceAPIShouldHaveReceivedRequests(ctx context.Context, count int, method, path string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if actual := tc.api.RequestCount(method, path); actual != count {
		return fmt.Errorf("expected %d %s requests to %s, got %d", count, method, path, actual)
	}
	return nil
}

func theFinanceAPIRequestShouldHaveTheField(ctx context.Context, call int, method, path, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	body := tc.api.GetRequestBody(method, path, call-1)
	if body == nil {
		return fmt.Errorf("request %d to %s %s was not received", call, method, path)
	}
	value, ok := getFieldValue(body, field)
	if !ok {
		return fmt.Errorf("field '%s' not found in request body %v", field, body)
	}
	if actual := stringify(value); actual != expected {
		return fmt.Errorf("request field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theFinanceAPIRequestShouldHaveTheQuery(ctx context.Context, call int, method, path, key, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	queries := tc.api.GetRequestQueries(method, path, call-1)
	if queries == nil {
		return fmt.Errorf("request %d to %s %s was not received", call, method, path)
	}
	if actual := queries[key]; actual != expected {
		return fmt.Errorf("query '%s' expected '%s', got '%s'", key, expected, actual)
	}
	return nil
}

// State steps

func theClientHasLoadedItsState(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.injector.Store.Initialize(ctx)
}

func theSyncHistoryIsFlushed(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.injector.History == nil {
		return fmt.Errorf("sync history is disabled")
	}
	tc.injector.History.FlushNow(ctx)
	return nil
}

func theDbShouldContainSyncRuns(ctx context.Context, count int, resource, status string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	actual, err := tc.db.Count("sync_runs", "resource = ? AND status = ?", resource, status)
	if err != nil {
		return err
	}
	if actual != int64(count) {
		return fmt.Errorf("expected %d %s sync runs for %s, got %d", count, status, resource, actual)
	}
	return nil
}

func theViewExpires(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if _, ok := tc.saved[name]; !ok {
		return fmt.Errorf("no saved view %q", name)
	}
	tc.redis.Server.FastForward(tc.cfg.Redis.ViewTTL + time.Second)
	return nil
}

// tableRows maps each data row of a godog table to its header names.
func tableRows(table *godog.Table) ([]map[string]string, error) {
	if len(table.Rows) < 1 {
		return nil, fmt.Errorf("table has no header row")
	}
	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = strings.TrimSpace(cell.Value)
		}
		rows = append(rows, values)
	}
	return rows, nil
}
