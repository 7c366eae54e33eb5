package httpkit

import (
	"net/http"

	pnet "claimboard/internal/platform/net"
)

// Subject returns the caller Auth resolved, or "" on unauthenticated routes
func Subject(r *http.Request) string { return pnet.Subject(r.Context()) }
