// Package module wires the member directory into the API using modkit
package module

import (
	modkit "claimboard/internal/modkit"
	"claimboard/internal/modkit/httpkit"

	memhttp "claimboard/internal/services/members/http"
	memrepo "claimboard/internal/services/members/repo"
	memsvc "claimboard/internal/services/members/service"
)

// Module serves directory sync routes and lends the directory to the claim processor
type Module struct {
	b     modkit.Built
	ports Ports
	svc   memsvc.Service
}

// New constructs the members module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("members"), modkit.WithPrefix("/members")}, opts...)...)

	var r memrepo.Repo
	switch {
	case deps.KV != nil:
		r = memrepo.NewKV(deps.KV)
	case deps.PG != nil:
		r = memrepo.NewPG().Bind(deps.PG)
	default:
		panic("members module requires a key value store or postgres")
	}
	svc := memsvc.New(r)
	return &Module{b: b, svc: svc, ports: Ports{Directory: svc}}
}

// MountRoutes implements module.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { memhttp.Register(rr, m.svc) })
}

// Name implements module.Module
func (m *Module) Name() string { return m.b.MustName() }
