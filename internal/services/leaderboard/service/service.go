// Package service implements leaderboard reads and writes
package service

import (
	"context"

	perr "claimboard/internal/platform/errors"
	"claimboard/internal/platform/logger"

	dom "claimboard/internal/services/leaderboard/domain"
	"claimboard/internal/services/leaderboard/repo"
)

// Service is the leaderboard contract
type Service interface{ dom.ServicePort }

const (
	// DefaultLimit is used when a read does not ask for a size
	DefaultLimit = 10
	// MaxLimit caps a single read
	MaxLimit = 100
)

// Svc implements Service over a Repo
type Svc struct {
	repo repo.Repo
}

var _ Service = (*Svc)(nil)

// New creates a leaderboard service
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("leaderboard.Service requires a non nil Repo")
	}
	return &Svc{repo: r}
}

// Increment adds a positive delta and returns the new total
func (s *Svc) Increment(ctx context.Context, participant uint64, delta int64) (int64, error) {
	if participant == 0 {
		return 0, perr.InvalidArgf("participant is required")
	}
	if delta <= 0 {
		return 0, perr.InvalidArgf("delta must be positive, got %d", delta)
	}
	return s.repo.Increment(ctx, participant, delta)
}

// Top returns the ranked board
func (s *Svc) Top(ctx context.Context, q dom.TopQuery) ([]dom.Entry, error) {
	limit := q.Limit
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	es, err := s.repo.Top(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range es {
		es[i].Rank = i + 1
	}
	return es, nil
}

// Score returns one participant's total; participants with no claims read as zero
func (s *Svc) Score(ctx context.Context, participant uint64) (dom.Entry, error) {
	if participant == 0 {
		return dom.Entry{}, perr.InvalidArgf("participant is required")
	}
	n, _, err := s.repo.Get(ctx, participant)
	if err != nil {
		return dom.Entry{}, err
	}
	return dom.Entry{Participant: participant, Score: n}, nil
}

// Reset clears every total
func (s *Svc) Reset(ctx context.Context) (dom.ResetResult, error) {
	n, err := s.repo.Clear(ctx)
	if err != nil {
		return dom.ResetResult{}, err
	}
	l := logger.C(ctx)
	l.Warn().Str("component", "leaderboard").Int64("cleared", n).Msg("leaderboard reset")
	return dom.ResetResult{Cleared: n}, nil
}
