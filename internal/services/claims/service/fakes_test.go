package service

import (
	"context"
	"errors"
	"sync"
	"time"

	dom "claimboard/internal/services/claims/domain"
)

// memMarkers is an atomic set-if-absent over a map
type memMarkers struct {
	mu    sync.Mutex
	keys  map[string]time.Duration
	calls int
	err   error
}

func newMarkers() *memMarkers { return &memMarkers{keys: map[string]time.Duration{}} }

func (m *memMarkers) SetIfAbsent(_ context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.keys[key]; ok {
		return false, nil
	}
	m.keys[key] = ttl
	return true, nil
}

type incr struct {
	id    dom.ParticipantID
	delta int64
}

// memScores records every increment
type memScores struct {
	mu     sync.Mutex
	totals map[dom.ParticipantID]int64
	incrs  []incr
	err    error
}

func newScores() *memScores { return &memScores{totals: map[dom.ParticipantID]int64{}} }

func (s *memScores) Increment(_ context.Context, id dom.ParticipantID, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.incrs = append(s.incrs, incr{id, delta})
	s.totals[id] += delta
	return s.totals[id], nil
}

func (s *memScores) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.incrs)
}

// dirParticipants is a static member directory
type dirParticipants struct {
	mu      sync.Mutex
	members map[dom.ParticipantID][]string
	calls   int
	err     error
}

func (d *dirParticipants) Lookup(_ context.Context, id dom.ParticipantID) (dom.Participant, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return dom.Participant{}, false, d.err
	}
	roles, ok := d.members[id]
	if !ok {
		return dom.Participant{}, false, nil
	}
	return dom.Participant{ID: id, Roles: roles}, true, nil
}

// memLedger keeps outcomes
type memLedger struct {
	mu  sync.Mutex
	out []dom.Outcome
	err error
}

func (l *memLedger) Record(_ context.Context, o dom.Outcome) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = append(l.out, o)
	return l.err
}

var errStore = errors.New("store down")
