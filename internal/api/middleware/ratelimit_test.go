package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/island-scholars/server/internal/config"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitThrottlesBurst(t *testing.T) {
	handler := RateLimit(config.RateLimitConfig{PublicPerMinute: 3})(okHandler())

	var last int
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/internships", nil)
		req.RemoteAddr = "203.0.113.5:1234"
		handler.ServeHTTP(rec, req)
		last = rec.Code
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}

func TestRateLimitKeysByClient(t *testing.T) {
	handler := RateLimit(config.RateLimitConfig{PublicPerMinute: 1})(okHandler())

	first := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/internships", nil)
	req.RemoteAddr = "203.0.113.5:1234"
	handler.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	other := httptest.NewRecorder()
	req2 := httptest.NewRequest("GET", "/internships", nil)
	req2.RemoteAddr = "198.51.100.7:9999"
	handler.ServeHTTP(other, req2)
	require.Equal(t, http.StatusOK, other.Code)
}

func TestRateLimitSkipsHealthz(t *testing.T) {
	handler := RateLimit(config.RateLimitConfig{PublicPerMinute: 1})(okHandler())

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/healthz", nil)
		req.RemoteAddr = "203.0.113.5:1234"
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestLoginTierIsSeparate(t *testing.T) {
	handler := WithRateLimitTierHandler(TierLogin)(
		RateLimit(config.RateLimitConfig{PublicPerMinute: 100, LoginPerMinute: 1})(okHandler()))

	first := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/signin", nil)
	req.RemoteAddr = "203.0.113.5:1234"
	handler.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req2 := httptest.NewRequest("POST", "/auth/signin", nil)
	req2.RemoteAddr = "203.0.113.5:1234"
	handler.ServeHTTP(second, req2)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	require.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestLoginTierOverridesAuthedTier(t *testing.T) {
	handler := WithRateLimitTierHandler(TierAuthed)(
		RateLimit(config.RateLimitConfig{AuthedPerMinute: 100, LoginPerMinute: 1})(okHandler()))

	first := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/signin", nil)
	req.RemoteAddr = "203.0.113.5:1234"
	handler.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req2 := httptest.NewRequest("POST", "/auth/signin", nil)
	req2.RemoteAddr = "203.0.113.5:1234"
	handler.ServeHTTP(second, req2)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
}
