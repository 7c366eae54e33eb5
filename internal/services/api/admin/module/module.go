// Package module wires the admin endpoints into the API using modkit
package module

import (
	"claimboard/internal/core/engine"
	modkit "claimboard/internal/modkit"
	"claimboard/internal/modkit/httpkit"

	adminhttp "claimboard/internal/services/api/admin/http"
	claimsrepo "claimboard/internal/services/claims/repo"
)

// Ports are injected via modkit.WithPorts
type Ports struct {
	Engine  *engine.Switch
	Markers claimsrepo.Repo
}

// Module serves engine control and marker maintenance
type Module struct {
	b  modkit.Built
	in Ports
}

// New constructs the admin module; callers attach the admin bearer middleware
func New(_ modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("admin"), modkit.WithPrefix("/admin")}, opts...)...)

	in, ok := b.Ports.(Ports)
	if !ok || in.Engine == nil || in.Markers == nil {
		panic("admin module requires Ports with Engine and Markers")
	}
	return &Module{b: b, in: in}
}

// MountRoutes implements module.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		adminhttp.Register(rr, adminhttp.Deps{Engine: m.in.Engine, Markers: m.in.Markers})
	})
}

// Name implements module.Module
func (m *Module) Name() string { return m.b.MustName() }

// Ports returns nothing; admin only consumes
func (m *Module) Ports() any { return nil }
