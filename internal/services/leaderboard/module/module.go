// Package module wires the leaderboard into the API using modkit
package module

import (
	modkit "claimboard/internal/modkit"
	"claimboard/internal/modkit/httpkit"

	lbhttp "claimboard/internal/services/leaderboard/http"
	lbrepo "claimboard/internal/services/leaderboard/repo"
	lbsvc "claimboard/internal/services/leaderboard/service"
)

// Module serves the leaderboard routes and lends its score ports to the claim processor
type Module struct {
	b     modkit.Built
	ports Ports
	svc   lbsvc.Service
}

// New constructs the leaderboard module
// totals live in the key value store when one is wired, otherwise in postgres
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("leaderboard"), modkit.WithPrefix("/leaderboard")}, opts...)...)

	svc := lbsvc.New(repoFor(deps))
	return &Module{b: b, svc: svc, ports: Ports{Scores: svc, Board: svc}}
}

func repoFor(deps modkit.Deps) lbrepo.Repo {
	if deps.KV != nil {
		return lbrepo.NewKV(deps.KV)
	}
	if deps.PG != nil {
		return lbrepo.NewPG().Bind(deps.PG)
	}
	panic("leaderboard module requires a key value store or postgres")
}

// MountRoutes implements module.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { lbhttp.Register(rr, m.svc) })
}

// Name implements module.Module
func (m *Module) Name() string { return m.b.MustName() }
