package middleware

import (
	"net/http"

	"claimboard/internal/platform/logger"
	pnet "claimboard/internal/platform/net"
)

// AuthPort resolves the caller of a request
type AuthPort interface {
	Parse(r *http.Request) (subject string, err error)
}

// Auth rejects requests p cannot resolve and records the subject on the context
func Auth(p AuthPort, write Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sub, err := p.Parse(r)
			if err != nil {
				status, env := pnet.Fail(err, pnet.RequestID(r.Context()))
				write(w, status, env)
				return
			}
			ctx := pnet.WithSubject(r.Context(), sub)
			ctx = logger.WithSubject(ctx, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
