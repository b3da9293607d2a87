// Package ratelimit applies a process-wide token bucket to the API.
package ratelimit

import (
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/api/respond"
)

// Middleware rejects requests with 429 once the bucket is empty. A non-positive
// rps disables limiting.
func Middleware(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	lim := rate.NewLimiter(rate.Limit(rps), burst)
	retryAfter := strconv.Itoa(retryAfterSeconds(rps))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow() {
				w.Header().Set("Retry-After", retryAfter)
				respond.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// maxRetryAfter caps the advertised wait at one day.
const maxRetryAfter = 24 * 60 * 60

// retryAfterSeconds is the time for one token to refill, rounded up.
func retryAfterSeconds(rps float64) int {
	secs := math.Ceil(1 / rps)
	if secs > maxRetryAfter {
		return maxRetryAfter
	}
	if secs < 1 {
		return 1
	}
	return int(secs)
}
