package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/voidhawk/rconpanel/internal/testutil"
)

func rateLimitedHandler(t *testing.T, limit rate.Limit, burst int) http.Handler {
	t.Helper()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return RateLimit(limit, burst, testutil.NopLogger())(ok)
}

func doRequest(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitBlocksPastBurst(t *testing.T) {
	// A refill rate of one token per hour means the burst is all the
	// budget the test ever sees.
	handler := rateLimitedHandler(t, rate.Every(time.Hour), 2)

	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:5001").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1:5002").Code)
}

func TestRateLimitTracksIPsIndependently(t *testing.T) {
	handler := rateLimitedHandler(t, rate.Every(time.Hour), 1)

	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1:5001").Code)

	// A different client still has its full budget.
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.2:5000").Code)
}

func TestRateLimitFallsBackToRawRemoteAddr(t *testing.T) {
	handler := rateLimitedHandler(t, rate.Every(time.Hour), 1)

	// RemoteAddr without a port still gets bucketed rather than bypassing
	// the limiter.
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.3").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.3").Code)
}
