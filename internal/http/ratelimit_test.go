package http

import (
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestIPRateLimiter_Middleware(t *testing.T) {
	limiter := NewIPRateLimiter(zap.NewNop(), 2)
	defer limiter.Stop()
	s := newTestServer(t, serverOptions{limiter: limiter})

	for i := 0; i < 2; i++ {
		if w, _ := s.do(t, http.MethodGet, "/api/auth/session", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
	w, resp := s.do(t, http.MethodGet, "/api/auth/session", nil)
	if w.Code != http.StatusTooManyRequests || resp.Error != msgTooManyRequests {
		t.Fatalf("expected 429, got %d %+v", w.Code, resp)
	}
	if got := w.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("expected Retry-After 30, got %q", got)
	}

	if w, _ := s.do(t, http.MethodGet, "/api/onboarding/steps/retailer", nil); w.Code != http.StatusOK {
		t.Fatalf("step catalog is not limited, got %d", w.Code)
	}
}

func TestIPRateLimiter_Disabled(t *testing.T) {
	limiter := NewIPRateLimiter(zap.NewNop(), 0)
	defer limiter.Stop()
	for i := 0; i < 100; i++ {
		if !limiter.get("10.0.0.1").Allow() {
			t.Fatalf("expected unlimited at request %d", i)
		}
	}
}

func TestIPRateLimiter_Evict(t *testing.T) {
	limiter := NewIPRateLimiter(zap.NewNop(), 10)
	defer limiter.Stop()
	limiter.get("10.0.0.1")
	limiter.get("10.0.0.2")
	if limiter.Len() != 2 {
		t.Fatalf("expected 2 limiters, got %d", limiter.Len())
	}
	limiter.evict(time.Now().Add(-time.Minute))
	if limiter.Len() != 2 {
		t.Fatalf("recent limiters must survive eviction")
	}
	limiter.evict(time.Now().Add(time.Minute))
	if limiter.Len() != 0 {
		t.Fatalf("expected all limiters evicted, got %d", limiter.Len())
	}
}
