package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"claimboard/internal/platform/config"
	phttp "claimboard/internal/platform/net/http"
	"claimboard/internal/platform/net/middleware"
)

// CommonStack is the per-request pipeline in front of every API route
// cfg supplies CORS_ORIGINS, REQUEST_TIMEOUT and SLOW_REQUEST
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(cfg.MayDuration("SLOW_REQUEST", 500*time.Millisecond)),
		middleware.RecoverJSON(phttp.JSON),
		middleware.NoCache(),
		middleware.CORS(cfg.MayCSV("CORS_ORIGINS", nil)),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(cfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second)),
	}
}

// Auth rejects callers p cannot resolve with the platform error envelope
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}

// RateLimit throttles with one shared token bucket, answering 429 in the platform envelope
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	return middleware.RateLimit(rps, burst, phttp.JSON)
}
