// Package service implements the claim ledger
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	perr "claimboard/internal/platform/errors"

	dom "claimboard/internal/services/ledger/domain"
	"claimboard/internal/services/ledger/repo"
)

// Service is the ledger contract
type Service interface{ dom.ServicePort }

const (
	// DefaultLimit is used when a read does not ask for a size
	DefaultLimit = 50
	// MaxLimit caps a single read
	MaxLimit = 500
)

// Svc implements Service over a Repo
type Svc struct {
	repo repo.Repo
	now  func() time.Time
}

var _ Service = (*Svc)(nil)

// New creates a ledger service
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("ledger.Service requires a non nil Repo")
	}
	return &Svc{repo: r, now: time.Now}
}

// Append stamps and stores an entry
func (s *Svc) Append(ctx context.Context, e dom.Entry) (dom.Entry, error) {
	if strings.TrimSpace(e.Outcome) == "" {
		return dom.Entry{}, perr.WithField(perr.InvalidArgf("outcome is required"), "outcome")
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = s.now()
	}
	e.RecordedAt = e.RecordedAt.UTC()
	if err := s.repo.Append(ctx, e); err != nil {
		return dom.Entry{}, err
	}
	return e, nil
}

// Recent returns the newest entries first
func (s *Svc) Recent(ctx context.Context, q dom.RecentQuery) ([]dom.Entry, error) {
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultLimit
	case q.Limit > MaxLimit:
		q.Limit = MaxLimit
	}
	q.Outcome = strings.ToLower(strings.TrimSpace(q.Outcome))
	if len(q.Outcome) > 32 {
		return nil, perr.WithField(perr.InvalidArgf("outcome filter too long"), "outcome")
	}
	return s.repo.Recent(ctx, q)
}
