package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLimitedEngine(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(rl.Middleware())
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine
}

func request(engine *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":12345"
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiterWithConfig(1, 2, time.Minute)
	rl.now = func() time.Time { return now }
	engine := newLimitedEngine(rl)

	t.Run("allows the burst", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if rec := request(engine, "10.0.0.1"); rec.Code != http.StatusOK {
				t.Errorf("expected status 200 on request %d, got %d", i+1, rec.Code)
			}
		}
	})

	t.Run("rejects past the burst", func(t *testing.T) {
		rec := request(engine, "10.0.0.1")
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected status 429, got %d", rec.Code)
		}
		if got := rec.Header().Get("Retry-After"); got != "1" {
			t.Errorf("expected Retry-After 1, got %q", got)
		}
	})

	t.Run("a rejected request does not consume a token", func(t *testing.T) {
		now = now.Add(time.Second)
		if rec := request(engine, "10.0.0.1"); rec.Code != http.StatusOK {
			t.Errorf("expected status 200 after refill, got %d", rec.Code)
		}
		if rec := request(engine, "10.0.0.1"); rec.Code != http.StatusTooManyRequests {
			t.Errorf("expected status 429 once the refill is spent, got %d", rec.Code)
		}
	})

	t.Run("other clients are independent", func(t *testing.T) {
		if rec := request(engine, "10.0.0.2"); rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("cleanup drops idle clients", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		rl.Cleanup()
		if len(rl.visitors) != 0 {
			t.Errorf("expected no visitors, got %d", len(rl.visitors))
		}
	})

	t.Run("a zero burst rejects without Retry-After", func(t *testing.T) {
		blocked := newLimitedEngine(NewRateLimiterWithConfig(1, 0, time.Minute))
		rec := request(blocked, "10.0.0.3")
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected status 429, got %d", rec.Code)
		}
		if got := rec.Header().Get("Retry-After"); got != "" {
			t.Errorf("expected no Retry-After, got %q", got)
		}
	})
}
