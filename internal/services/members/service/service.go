// Package service implements the member directory
package service

import (
	"context"
	"sort"

	perr "claimboard/internal/platform/errors"

	dom "claimboard/internal/services/members/domain"
	"claimboard/internal/services/members/repo"
)

// Service is the member directory contract
type Service interface{ dom.ServicePort }

// Svc implements Service over a Repo
type Svc struct{ repo repo.Repo }

var _ Service = (*Svc)(nil)

// New creates a member directory service
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("members.Service requires a non nil Repo")
	}
	return &Svc{repo: r}
}

// Put creates or replaces a member; roles are stored sorted and unique
func (s *Svc) Put(ctx context.Context, m dom.Member) (dom.Member, error) {
	if m.ID == 0 {
		return dom.Member{}, perr.WithField(perr.InvalidArgf("member id is required"), "id")
	}
	m.Roles = normalizeRoles(m.Roles)
	if err := s.repo.Upsert(ctx, m); err != nil {
		return dom.Member{}, err
	}
	return m, nil
}

// Get returns a member or a not found error
func (s *Svc) Get(ctx context.Context, id uint64) (dom.Member, error) {
	m, ok, err := s.Find(ctx, id)
	if err != nil {
		return dom.Member{}, err
	}
	if !ok {
		return dom.Member{}, perr.NotFoundf("member %d not found", id)
	}
	return m, nil
}

// Find is Get without the not found error
func (s *Svc) Find(ctx context.Context, id uint64) (dom.Member, bool, error) {
	if id == 0 {
		return dom.Member{}, false, nil
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a member
func (s *Svc) Delete(ctx context.Context, id uint64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return perr.NotFoundf("member %d not found", id)
	}
	return nil
}

func normalizeRoles(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, r := range in {
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
