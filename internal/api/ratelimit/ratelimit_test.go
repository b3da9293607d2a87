package ratelimit

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

func TestMiddleware_Disabled(t *testing.T) {
	h := Middleware(0, 0)(ok)
	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestMiddleware_RejectsAfterBurst(t *testing.T) {
	h := Middleware(0.001, 2)(ok)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rr.Code)
		if rr.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, rr.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestRetryAfterSeconds(t *testing.T) {
	for _, tc := range []struct {
		rps  float64
		want int
	}{
		{100, 1},
		{1, 1},
		{0.5, 2},
		{0.3, 4},
		{0.001, 1000},
		{1e-12, maxRetryAfter},
		{math.SmallestNonzeroFloat64, maxRetryAfter},
	} {
		assert.Equal(t, tc.want, retryAfterSeconds(tc.rps), "rps=%g", tc.rps)
	}
}

func TestMiddleware_TinyRateKeepsRetryAfterSane(t *testing.T) {
	h := Middleware(1e-12, 1)(ok)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "86400", rr.Header().Get("Retry-After"))
}
