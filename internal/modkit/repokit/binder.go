// Package repokit binds sql repositories to a query surface
package repokit

import "claimboard/internal/platform/store"

// Queryer is the read and write surface sql repos run against
type Queryer = store.RowQuerier

// Binder builds a repo over a Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}
