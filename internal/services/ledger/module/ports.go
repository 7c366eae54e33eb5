package module

import dom "claimboard/internal/services/ledger/domain"

// Ports are what other modules may pull from the ledger
type Ports struct {
	Ledger dom.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
