package middleware

import (
	"math"
	"net/http"
	"strconv"

	perr "claimboard/internal/platform/errors"
	pnet "claimboard/internal/platform/net"

	"golang.org/x/time/rate"
)

// RateLimit admits requests through one shared token bucket refilled at rps with room for burst
// rejected requests get a 429 envelope and Retry-After; rps <= 0 disables the limiter
func RateLimit(rps float64, burst int, write Writer) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	lim := rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	retry := strconv.Itoa(int(math.Max(1, math.Ceil(1/rps))))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow() {
				w.Header().Set("Retry-After", retry)
				status, env := pnet.Fail(perr.New(perr.ErrorCodeTooManyRequests, "rate limit exceeded"), pnet.RequestID(r.Context()))
				write(w, status, env)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
