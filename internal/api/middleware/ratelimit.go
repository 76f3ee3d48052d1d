package middleware

import (
	"log"
	"net"
	"net/http"
	"time"

	"tourbase/internal/common"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window per-IP counter over redis, applied to the
// credential-sensitive routes (signup, login, password recovery).
type RateLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, max int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, max: max, window: window}
}

func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		key := "ratelimit:auth:" + ip

		count, err := l.rdb.Incr(r.Context(), key).Result()
		if err != nil {
			// Redis being down must not lock everyone out.
			log.Printf("rate limiter unavailable: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			l.rdb.Expire(r.Context(), key, l.window)
		}
		if count > int64(l.max) {
			common.RespondWithError(w, common.HTTPStatusFromError(common.ErrTooManyRequests),
				"Too many requests from this IP, please try again later!")
			return
		}
		next.ServeHTTP(w, r)
	})
}
