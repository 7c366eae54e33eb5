// Package service implements the claim event processor
package service

import (
	"context"
	"time"

	"claimboard/internal/core/engine"
	"claimboard/internal/core/rarity"
	"claimboard/internal/platform/logger"

	dom "claimboard/internal/services/claims/domain"
)

// Service is the event port plus nothing else; admin state lives on the engine switch
type Service interface {
	dom.EventPort
}

// Config is the process wide claim policy, fixed at boot
type Config struct {
	TrustedOrigin uint64
	Scope         uint64
	SelfID        uint64
	BonusRoles    []string
	MarkerTTL     time.Duration
	ScoreOnCreate bool
}

// Collaborators are the owned values and ports the processor reads
type Collaborators struct {
	Engine       *engine.Switch
	Tiers        *rarity.Table
	Markers      dom.MarkerPort
	Scores       dom.ScorePort
	Participants dom.ParticipantPort
	// Ledger is optional
	Ledger dom.LedgerPort
}

// Svc implements the claim event processor
type Svc struct {
	cfg          Config
	engine       *engine.Switch
	tiers        *rarity.Table
	gate         *Gate
	apply        *Applicator
	participants dom.ParticipantPort
	ledger       dom.LedgerPort
}

var _ Service = (*Svc)(nil)

// DefaultMarkerTTL is how long a scored claim stays deduplicated
const DefaultMarkerTTL = 24 * time.Hour

// New constructs the service
func New(cfg Config, c Collaborators) *Svc {
	if cfg.MarkerTTL <= 0 {
		cfg.MarkerTTL = DefaultMarkerTTL
	}
	if c.Tiers == nil {
		c.Tiers = rarity.MustLoad("")
	}
	return &Svc{
		cfg:          cfg,
		engine:       c.Engine,
		tiers:        c.Tiers,
		gate:         NewGate(c.Markers, cfg.MarkerTTL),
		apply:        NewApplicator(c.Scores, cfg.BonusRoles),
		participants: c.Participants,
		ledger:       c.Ledger,
	}
}

// record writes recordable outcomes to the ledger; failures never fail the event
func (s *Svc) record(ctx context.Context, log *logger.Logger, o dom.Outcome) {
	if s.ledger == nil || !o.Reason.Recordable() {
		return
	}
	if err := s.ledger.Record(ctx, o); err != nil {
		log.Warn().Err(err).Str("reason", string(o.Reason)).Msg("claim ledger write failed")
	}
}
