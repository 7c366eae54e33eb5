package module

import dom "claimboard/internal/services/leaderboard/domain"

// Ports are what other modules may pull from the leaderboard
type Ports struct {
	Scores dom.ScorePort
	Board  dom.ReadPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
