// Package module wires the claim processor and exposes its ports
package module

import (
	"claimboard/internal/core/engine"
	"claimboard/internal/core/rarity"
	"claimboard/internal/modkit"
	"claimboard/internal/modkit/httpkit"

	dom "claimboard/internal/services/claims/domain"
	"claimboard/internal/services/claims/repo"
	"claimboard/internal/services/claims/service"
	lbdom "claimboard/internal/services/leaderboard/domain"
	ledgerdom "claimboard/internal/services/ledger/domain"
	memdom "claimboard/internal/services/members/domain"
)

// Inputs are the ports other modules lend the claim processor
type Inputs struct {
	Scores    lbdom.ScorePort
	Directory memdom.ServicePort
	// Ledger is optional
	Ledger ledgerdom.ServicePort
	// Engine is optional; a fresh switch is created from options when nil
	Engine *engine.Switch
}

// Module defines the claims module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the claim processor with its ports
// markers live in the key value store when one is wired, otherwise in postgres
func New(deps modkit.Deps, overrides Options, in Inputs) *Module {
	opts := FromConfig(deps.Cfg).merge(overrides)

	if in.Scores == nil || in.Directory == nil {
		panic("claims module requires leaderboard scores and a member directory")
	}

	var markers repo.Repo
	switch {
	case deps.KV != nil:
		markers = repo.NewKV(deps.KV)
	case deps.PG != nil:
		markers = repo.NewPG().Bind(deps.PG)
	default:
		panic("claims module requires a key value store or postgres")
	}

	sw := in.Engine
	if sw == nil {
		st, err := engine.ParseState(opts.EngineState)
		if err != nil {
			panic(err)
		}
		sw = engine.NewSwitch(st)
	}

	tiers := rarity.MustLoad(opts.TiersFile)
	c := service.Collaborators{
		Engine:       sw,
		Tiers:        tiers,
		Markers:      markers,
		Scores:       scoresPort{lb: in.Scores},
		Participants: participantsPort{dir: in.Directory},
	}
	if in.Ledger != nil {
		c.Ledger = ledgerPort{l: in.Ledger}
	}

	svc := service.New(service.Config{
		TrustedOrigin: opts.TrustedOrigin,
		Scope:         opts.Scope,
		SelfID:        opts.SelfID,
		BonusRoles:    opts.BonusRoles,
		MarkerTTL:     opts.MarkerTTL,
		ScoreOnCreate: opts.ScoreOnCreate,
	}, c)

	return &Module{
		deps:  deps,
		ports: Ports{Events: svc, Engine: sw, Markers: markers, Tiers: tiers},
	}
}

var _ dom.EventPort = (*service.Svc)(nil)

// Name returns the module name
func (m *Module) Name() string { return "claims" }

// MountRoutes returns no HTTP routes; ingest owns the transport
func (m *Module) MountRoutes(_ httpkit.Router) {}
