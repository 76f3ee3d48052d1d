package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedHandler(t *testing.T, max int) (http.Handler, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRateLimiter(rdb, max, time.Minute)
	return limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})), mr
}

func doRequest(h http.Handler, addr string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	h, _ := newLimitedHandler(t, 3)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1234"))
	}
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "10.0.0.1:1234"))

	// A different client is unaffected.
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.2:1234"))
}

func TestRateLimiter_WindowResets(t *testing.T) {
	h, mr := newLimitedHandler(t, 1)

	require.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1234"))
	require.Equal(t, http.StatusTooManyRequests, doRequest(h, "10.0.0.1:1234"))

	mr.FastForward(2 * time.Minute)
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1234"))
}

func TestRateLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	h, mr := newLimitedHandler(t, 1)
	mr.Close()

	// Redis being unreachable must not lock clients out.
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1234"))
}
