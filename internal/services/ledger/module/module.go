// Package module wires the claim ledger into the API using modkit
package module

import (
	modkit "claimboard/internal/modkit"
	"claimboard/internal/modkit/httpkit"

	ledgerhttp "claimboard/internal/services/ledger/http"
	ledgerrepo "claimboard/internal/services/ledger/repo"
	ledgersvc "claimboard/internal/services/ledger/service"
)

// Module serves ledger reads and lends the append port to the claim processor
type Module struct {
	b     modkit.Built
	ports Ports
	svc   ledgersvc.Service
}

// New constructs the ledger module; entries go to clickhouse when wired, otherwise to the log
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("ledger"), modkit.WithPrefix("/ledger")}, opts...)...)

	r := ledgerrepo.NewLog()
	if deps.CH != nil {
		r = ledgerrepo.NewCH(deps.CH)
	}
	svc := ledgersvc.New(r)
	return &Module{b: b, svc: svc, ports: Ports{Ledger: svc}}
}

// MountRoutes implements module.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { ledgerhttp.Register(rr, m.svc) })
}

// Name implements module.Module
func (m *Module) Name() string { return m.b.MustName() }
