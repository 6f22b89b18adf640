package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func limitedServer(t *testing.T, conf LimiterConfig, key KeySelector) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(conf)
	t.Cleanup(rl.Stop)

	s := gin.New()
	s.Use(rl.Middleware(key))
	s.GET("/x", func(c *gin.Context) { c.String(200, "ok") })
	return s
}

// RPS=1, Burst=1: the second immediate request gets 429 with Retry-After
func TestRateLimiter_429(t *testing.T) {
	s := limitedServer(t, LimiterConfig{RPS: 1, Burst: 1}, func(c *gin.Context) string { return "k" })

	w1 := httptest.NewRecorder()
	s.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w1.Code != 200 {
		t.Fatalf("want 200, got %d", w1.Code)
	}

	w2 := httptest.NewRecorder()
	s.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("want 429, got %d", w2.Code)
	}
	if w2.Header().Get("Retry-After") != "1" {
		t.Fatalf("want Retry-After 1, got %q", w2.Header().Get("Retry-After"))
	}
	var body struct {
		Errors []struct {
			Extensions map[string]string `json:"extensions"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &body); err != nil || len(body.Errors) != 1 ||
		body.Errors[0].Extensions["code"] != "RATE_LIMITED" {
		t.Fatalf("unexpected body %s", w2.Body.String())
	}
}

func TestRateLimiter_EmptyKeySkips(t *testing.T) {
	s := limitedServer(t, LimiterConfig{RPS: 1, Burst: 1}, func(c *gin.Context) string { return "" })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != 200 {
			t.Fatalf("request %d limited: %d", i, w.Code)
		}
	}
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl := NewRateLimiter(LimiterConfig{RPS: 1, Burst: 1, IdleTTL: time.Minute})
	defer rl.Stop()
	rl.Allow("old")
	rl.evictIdle(time.Now().Add(2 * time.Minute))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.buckets) != 0 {
		t.Fatalf("idle bucket kept: %v", rl.buckets)
	}
}

func TestRateLimiter_StopEndsJanitor(t *testing.T) {
	rl := NewRateLimiter(LimiterConfig{RPS: 1, Burst: 1, IdleTTL: time.Millisecond})
	rl.Stop()
	rl.Stop() // idempotent

	select {
	case <-rl.done:
	case <-time.After(time.Second):
		t.Fatalf("done channel not closed")
	}
}
