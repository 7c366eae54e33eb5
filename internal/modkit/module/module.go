// Package module holds the module contract, port lookup and the boot time registry
package module

import (
	phttp "claimboard/internal/platform/net/http"
)

// Module is what the api composes: routes, ports and a name
// it lives apart from modkit so port types can import it without cycles
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
