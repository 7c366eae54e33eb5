// Package module wires meta endpoints into the API
package module

import (
	"time"

	"claimboard/internal/core/rarity"
	"claimboard/internal/core/version"
	modkit "claimboard/internal/modkit"
	"claimboard/internal/modkit/httpkit"
	registry "claimboard/internal/modkit/module"

	metahttp "claimboard/internal/services/api/meta/http"
)

// Ports are injected via modkit.WithPorts
type Ports struct {
	ServiceName string
	Tiers       *rarity.Table
}

// Module serves the public meta routes
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs the meta module; every wired store joins the readiness probe
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)

	in, _ := b.Ports.(Ports)
	if in.ServiceName == "" {
		in.ServiceName = version.Service
	}

	d := metahttp.Deps{
		ServiceName: in.ServiceName,
		StartedAt:   time.Now(),
		Tiers:       in.Tiers,
		Modules:     registry.Names,
	}
	if deps.PG != nil {
		d.Backends = append(d.Backends, metahttp.Backend{Name: "pg", Seam: deps.PG})
	}
	if deps.CH != nil {
		d.Backends = append(d.Backends, metahttp.Backend{Name: "ch", Seam: deps.CH})
	}
	if deps.KV != nil {
		d.Backends = append(d.Backends, metahttp.Backend{Name: "kv", Seam: deps.KV})
	}
	return &Module{b: b, deps: d}
}

// MountRoutes implements module.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements module.Module
func (m *Module) Name() string { return m.b.MustName() }

// Ports returns nothing; meta only reads
func (m *Module) Ports() any { return nil }
