// Package modkit builds API modules from shared deps and per module options
package modkit

import "net/http"

// Option adjusts a module before it is built
type Option func(*Built)

// WithName names the module for logs and the port registry
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix mounts the module under a path prefix
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithMiddlewares appends middleware run before every module route, in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands a module the ports it borrows from other modules
// the concrete type is owned by the receiving module
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}
