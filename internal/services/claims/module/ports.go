package module

import (
	"claimboard/internal/core/engine"
	"claimboard/internal/core/rarity"
	dom "claimboard/internal/services/claims/domain"
	"claimboard/internal/services/claims/repo"
)

// Ports are what the ingest and admin surfaces pull from the claim processor
type Ports struct {
	Events  dom.EventPort
	Engine  *engine.Switch
	Markers repo.Repo
	Tiers   *rarity.Table
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
