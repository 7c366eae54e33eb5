// Package engine holds the run/pause/stop switch that gates claim processing
package engine

import (
	"strings"
	"sync/atomic"

	perr "claimboard/internal/platform/errors"
)

// State is the tri-valued engine flag
type State int32

const (
	// Running processes every inbound event
	Running State = iota
	// Paused drops events until resumed
	Paused
	// Stopped drops events until explicitly restarted
	Stopped
)

// String returns the wire name of the state
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ParseState maps a wire name back to a State
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "running", "run", "resume", "resumed":
		return Running, nil
	case "paused", "pause":
		return Paused, nil
	case "stopped", "stop":
		return Stopped, nil
	}
	return Running, perr.InvalidArgf("unknown engine state %q", s)
}

// Switch owns the engine state for one process
// zero value is Running
type Switch struct {
	v atomic.Int32
}

// NewSwitch returns a Switch starting in the given state
func NewSwitch(initial State) *Switch {
	s := &Switch{}
	s.v.Store(int32(initial))
	return s
}

// State reads the current state without locking
func (s *Switch) State() State {
	if s == nil {
		return Running
	}
	return State(s.v.Load())
}

// Set stores a new state and returns the previous one
func (s *Switch) Set(next State) State {
	return State(s.v.Swap(int32(next)))
}

// Running reports whether events should be processed
func (s *Switch) Running() bool { return s.State() == Running }
