// Package testkit holds helpers shared by tests across packages
// Container helpers sit behind the integration build tags
package testkit

import "testing"

// MustPanic fails t unless fn panics, and returns the recovered value
func MustPanic(t *testing.T, fn func()) (v any) {
	t.Helper()
	defer func() {
		v = recover()
		if v == nil {
			t.Fatal("expected a panic")
		}
	}()
	fn()
	return nil
}
