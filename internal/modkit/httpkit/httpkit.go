// Package httpkit is the routing surface modules mount against
// handlers return (any, error) and the platform envelope does the rest
package httpkit

import (
	"net/http"

	phttp "claimboard/internal/platform/net/http"
)

type (
	// Router is the platform router seam
	Router = phttp.Router

	// Handler is the platform handler type
	Handler = phttp.Handler
)

// Get mounts a body-less GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.NoBody(h))
}

// Post mounts a body-less POST
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, phttp.NoBody(h))
}

// Delete mounts a body-less DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, phttp.NoBody(h))
}

// PostJSON mounts a POST whose body binds and validates into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// PutJSON mounts a PUT whose body binds and validates into T
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, phttp.JSONHandler(h))
}

// NoContent is the 204 a handler returns when there is nothing to say
func NoContent() any { return phttp.NoContent() }

// MountAPIV1 scopes mount under /api/v1 behind mw
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/v1", func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}
