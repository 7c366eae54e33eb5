package middleware

import (
	"net/http"
	"runtime/debug"

	perr "claimboard/internal/platform/errors"
	"claimboard/internal/platform/logger"
	pnet "claimboard/internal/platform/net"
)

// RecoverJSON turns a handler panic into a 500 envelope and logs the stack
// http.ErrAbortHandler is re-raised so net/http can drop the connection
func RecoverJSON(write Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logger.C(r.Context()).Error().
					Interface("panic", v).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				status, env := pnet.Fail(perr.PanicErrf("panic recovered"), pnet.RequestID(r.Context()))
				write(w, status, env)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
