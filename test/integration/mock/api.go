package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// ApiMock stands in for the remote finance API. Responses are keyed by
// method+path and by the index of the call; index -1 sets the default for
// every call. A "*" path segment matches any value.
type ApiMock struct {
	mu                    sync.Mutex
	server                *httptest.Server
	headersReceived       map[string]map[int]map[string]string
	queriesReceived       map[string]map[int]map[string]string
	requestsReceived      map[string]map[int]any
	responseMap           map[string]map[int]any
	defaultResponseMap    map[string]map[int]any
	responseStatus        map[string]map[int]int
	defaultResponseStatus map[string]map[int]int
	mockUrl               string
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		headersReceived:       map[string]map[int]map[string]string{},
		queriesReceived:       map[string]map[int]map[string]string{},
		requestsReceived:      map[string]map[int]any{},
		responseMap:           map[string]map[int]any{},
		defaultResponseMap:    map[string]map[int]any{},
		responseStatus:        map[string]map[int]int{},
		defaultResponseStatus: map[string]map[int]int{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
	a.mockUrl = a.server.URL
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	a.mu.Lock()
	method := r.Method
	path := r.URL.Path
	key := method + path
	index := len(a.requestsReceived[key])

	var request any
	if err := json.Unmarshal(body, &request); err != nil || request == nil {
		request = map[string]any{}
	}
	if a.requestsReceived[key] == nil {
		a.requestsReceived[key] = map[int]any{}
	}
	a.requestsReceived[key][index] = request

	if a.headersReceived[key] == nil {
		a.headersReceived[key] = map[int]map[string]string{}
	}
	a.headersReceived[key][index] = map[string]string{}
	for name, value := range r.Header {
		a.headersReceived[key][index][name] = value[0]
	}

	if a.queriesReceived[key] == nil {
		a.queriesReceived[key] = map[int]map[string]string{}
	}
	a.queriesReceived[key][index] = map[string]string{}
	for name, value := range r.URL.Query() {
		a.queriesReceived[key][index][name] = value[0]
	}

	status := a.getResponseStatus(method, path, index)
	response, _ := json.Marshal(a.getResponseBody(method, path, index))
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status != http.StatusNoContent {
		_, _ = w.Write(response)
	}
}

func (a *ApiMock) GetUrl() string {
	return a.mockUrl
}

// SetResponse registers the status and body returned for the index-th call
// to method+path, or for every call when index is -1.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + path
	if a.responseMap[key] == nil {
		a.responseMap[key] = map[int]any{}
	}
	if a.responseStatus[key] == nil {
		a.responseStatus[key] = map[int]int{}
	}
	if a.defaultResponseMap[key] == nil {
		a.defaultResponseMap[key] = map[int]any{}
	}
	if a.defaultResponseStatus[key] == nil {
		a.defaultResponseStatus[key] = map[int]int{}
	}
	if index == -1 {
		a.defaultResponseStatus[key][0] = status
		a.defaultResponseMap[key][0] = response
	} else {
		a.responseMap[key][index] = response
		a.responseStatus[key][index] = status
	}
}

// RequestCount returns how many calls method+path received.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	count := 0
	for key, requests := range a.requestsReceived {
		if !strings.HasPrefix(key, method) {
			continue
		}
		if a.matchPath(path, strings.TrimPrefix(key, method)) {
			count += len(requests)
		}
	}
	return count
}

func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := a.findMatchingKeyGeneric(a.getMapKeys(a.requestsReceived), method, path, true)
	if key != "" && a.requestsReceived[key] != nil {
		if request, ok := a.requestsReceived[key][index].(map[string]any); ok {
			return request
		}
	}
	return nil
}

func (a *ApiMock) GetRequestHeaders(method, path string, index int) map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := a.findMatchingKeyGeneric(a.getMapKeys(a.headersReceived), method, path, true)
	if key != "" && a.headersReceived[key] != nil {
		if headers, exists := a.headersReceived[key][index]; exists {
			return headers
		}
	}
	return nil
}

func (a *ApiMock) GetRequestQueries(method, path string, index int) map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := a.findMatchingKeyGeneric(a.getMapKeys(a.queriesReceived), method, path, true)
	if key != "" && a.queriesReceived[key] != nil {
		if queries, exists := a.queriesReceived[key][index]; exists {
			return queries
		}
	}
	return nil
}

// Reset forgets every registered response and every received request.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.headersReceived = map[string]map[int]map[string]string{}
	a.queriesReceived = map[string]map[int]map[string]string{}
	a.requestsReceived = map[string]map[int]any{}
	a.responseMap = map[string]map[int]any{}
	a.defaultResponseMap = map[string]map[int]any{}
	a.responseStatus = map[string]map[int]int{}
	a.defaultResponseStatus = map[string]map[int]int{}
}

func (a *ApiMock) ClearResponses(method, path string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	prefix := method + path
	for key := range a.headersReceived {
		if strings.HasPrefix(key, prefix) {
			delete(a.headersReceived, key)
		}
	}
	for key := range a.requestsReceived {
		if strings.HasPrefix(key, prefix) {
			delete(a.requestsReceived, key)
		}
	}
	for key := range a.queriesReceived {
		if strings.HasPrefix(key, prefix) {
			delete(a.queriesReceived, key)
		}
	}
	for key := range a.responseMap {
		if strings.HasPrefix(key, prefix) {
			delete(a.responseMap, key)
		}
	}
	for key := range a.responseStatus {
		if strings.HasPrefix(key, prefix) {
			delete(a.responseStatus, key)
		}
	}
	for key := range a.defaultResponseMap {
		if strings.HasPrefix(key, prefix) {
			delete(a.defaultResponseMap, key)
		}
	}
	for key := range a.defaultResponseStatus {
		if strings.HasPrefix(key, prefix) {
			delete(a.defaultResponseStatus, key)
		}
	}
}

func (a *ApiMock) getResponseBody(method string, path string, index int) any {
	key := a.findMatchingKeyGeneric(a.getMapKeys(a.responseMap), method, path)
	if key != "" && a.responseMap[key] != nil {
		if response, exists := a.responseMap[key][index]; exists && response != nil {
			return response
		}
	}

	defaultKey := a.findMatchingKeyGeneric(a.getMapKeys(a.defaultResponseMap), method, path)
	if defaultKey != "" && a.defaultResponseMap[defaultKey] != nil {
		if response, exists := a.defaultResponseMap[defaultKey][0]; exists && response != nil {
			return response
		}
	}

	return map[string]any{}
}

func (a *ApiMock) getResponseStatus(method string, path string, index int) int {
	key := a.findMatchingKeyGeneric(a.getMapKeys(a.responseStatus), method, path)
	if key != "" && a.responseStatus[key] != nil {
		if status, exists := a.responseStatus[key][index]; exists && status != 0 {
			return status
		}
	}

	defaultKey := a.findMatchingKeyGeneric(a.getMapKeys(a.defaultResponseStatus), method, path)
	if defaultKey != "" && a.defaultResponseStatus[defaultKey] != nil {
		if status, exists := a.defaultResponseStatus[defaultKey][0]; exists && status != 0 {
			return status
		}
	}

	// WriteHeader(0) panics
	return http.StatusOK
}

func (a *ApiMock) matchPath(pattern string, path string) bool {
	if pattern == path {
		return true
	}

	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")

	if len(patternParts) != len(pathParts) {
		return false
	}

	for i := range patternParts {
		if patternParts[i] != "*" && pathParts[i] != "*" && patternParts[i] != pathParts[i] {
			return false
		}
	}

	return true
}

func (a *ApiMock) findMatchingKeyGeneric(keys []string, method string, path string, strict ...bool) string {
	isStrict := len(strict) > 0 && strict[0]

	exactKey := method + path
	for _, key := range keys {
		if key == exactKey && (!isStrict || !strings.Contains(key, "*")) {
			return key
		}
	}

	for _, key := range keys {
		if isStrict && strings.Contains(key, "*") {
			continue
		}
		if strings.HasPrefix(key, method) {
			if a.matchPath(strings.TrimPrefix(key, method), path) {
				return key
			}
		}
	}

	return ""
}

func (a *ApiMock) getMapKeys(m any) []string {
	var keys []string
	switch v := m.(type) {
	case map[string]map[int]map[string]string:
		for key := range v {
			keys = append(keys, key)
		}
	case map[string]map[int]any:
		for key := range v {
			keys = append(keys, key)
		}
	case map[string]map[int]int:
		for key := range v {
			keys = append(keys, key)
		}
	}
	return keys
}
