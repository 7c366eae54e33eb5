package modkit

import (
	"net/http"
	"strings"

	"claimboard/internal/modkit/httpkit"
)

// Built is the resolved module configuration
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	// Ports are inbound ports set with WithPorts, nil when none were given
	Ports any
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// Mount opens the module prefix on r, installs the module middleware and calls register
// it panics on a malformed prefix so bad wiring fails at boot
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	r.Route(mountPath(b.Prefix), func(rr httpkit.Router) {
		for _, mw := range b.Mw {
			rr.Use(mw)
		}
		register(rr)
	})
}

// MustName returns the module name or panics when it was never set
func (b Built) MustName() string {
	if strings.TrimSpace(b.Name) == "" {
		panic("modkit: module name is required")
	}
	return b.Name
}

// mountPath turns "members/" or " /members " into "/members"
func mountPath(prefix string) string {
	p := strings.Trim(prefix, " /")
	if p == "" {
		panic("modkit: module prefix is required")
	}
	return "/" + p
}
