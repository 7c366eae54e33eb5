package module

import dom "claimboard/internal/services/members/domain"

// Ports are what other modules may pull from the member directory
type Ports struct {
	Directory dom.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
