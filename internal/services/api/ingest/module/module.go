// Package module wires the ingest endpoints into the API using modkit
package module

import (
	modkit "claimboard/internal/modkit"
	"claimboard/internal/modkit/httpkit"
	"claimboard/internal/platform/logger"

	ingesthttp "claimboard/internal/services/api/ingest/http"
	dom "claimboard/internal/services/claims/domain"
)

// Ports are injected via modkit.WithPorts
type Ports struct {
	Events dom.EventPort
}

// Module accepts transport events and hands them to the claim processor
type Module struct {
	b      modkit.Built
	events dom.EventPort
}

// New constructs the ingest module; only authenticated events draw from the rate limit
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	o := FromConfig(deps.Cfg)
	auth := httpkit.Auth(httpkit.StaticToken("ingest", o.Token))
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("ingest"),
		modkit.WithPrefix("/events"),
		modkit.WithMiddlewares(auth, httpkit.RateLimit(o.RPS, o.Burst)),
	}, opts...)...)

	in, ok := b.Ports.(Ports)
	if !ok || in.Events == nil {
		panic("ingest module requires Ports with Events")
	}
	if o.Token == "" {
		log := logger.Named("ingest")
		log.Warn().Msg("CORE_API_INGEST_TOKEN is empty, every event will be rejected")
	}
	return &Module{b: b, events: in.Events}
}

// MountRoutes implements module.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { ingesthttp.Register(rr, m.events) })
}

// Name implements module.Module
func (m *Module) Name() string { return m.b.MustName() }

// Ports returns nothing; ingest only consumes
func (m *Module) Ports() any { return nil }
