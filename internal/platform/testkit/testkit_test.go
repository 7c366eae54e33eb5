package testkit

import "testing"

func TestMustPanic(t *testing.T) {
	if v := MustPanic(t, func() { panic("modkit: module name is required") }); v != "modkit: module name is required" {
		t.Fatalf("recovered %v", v)
	}
}
