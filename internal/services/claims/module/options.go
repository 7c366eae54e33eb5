package module

import (
	"time"

	"claimboard/internal/platform/config"
)

// Options controls the claim processor
type Options struct {
	TrustedOrigin uint64
	Scope         uint64
	SelfID        uint64
	TiersFile     string
	BonusRoles    []string
	MarkerTTL     time.Duration
	ScoreOnCreate bool
	EngineState   string
}

// FromConfig reads with CLAIMS_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CLAIMS_")
	return Options{
		TrustedOrigin: c.MayUint64("TRUSTED_ORIGIN", 0),
		Scope:         c.MayUint64("SCOPE", 0),
		SelfID:        c.MayUint64("SELF_ID", 0),
		TiersFile:     c.MayString("TIERS_FILE", ""),
		BonusRoles:    c.MayCSV("BONUS_ROLES", nil),
		MarkerTTL:     c.MayDuration("MARKER_TTL", 24*time.Hour),
		ScoreOnCreate: c.MayBool("SCORE_ON_CREATE", false),
		EngineState:   c.MayEnum("ENGINE_STATE", "running", "running", "paused", "stopped"),
	}
}

// merge applies non zero overrides on top of o
func (o Options) merge(over Options) Options {
	if over.TrustedOrigin != 0 {
		o.TrustedOrigin = over.TrustedOrigin
	}
	if over.Scope != 0 {
		o.Scope = over.Scope
	}
	if over.SelfID != 0 {
		o.SelfID = over.SelfID
	}
	if over.TiersFile != "" {
		o.TiersFile = over.TiersFile
	}
	if len(over.BonusRoles) > 0 {
		o.BonusRoles = over.BonusRoles
	}
	if over.MarkerTTL != 0 {
		o.MarkerTTL = over.MarkerTTL
	}
	if over.ScoreOnCreate {
		o.ScoreOnCreate = true
	}
	if over.EngineState != "" {
		o.EngineState = over.EngineState
	}
	return o
}
