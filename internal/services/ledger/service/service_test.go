package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	perr "claimboard/internal/platform/errors"

	dom "claimboard/internal/services/ledger/domain"
)

type memRepo struct {
	entries []dom.Entry
	lastQ   dom.RecentQuery
}

func (m *memRepo) Append(_ context.Context, e dom.Entry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memRepo) Recent(_ context.Context, q dom.RecentQuery) ([]dom.Entry, error) {
	m.lastQ = q
	return m.entries, nil
}

func TestAppend_StampsIDAndTime(t *testing.T) {
	r := &memRepo{}
	s := New(r)
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	got, err := s.Append(context.Background(), dom.Entry{EventID: "e", Outcome: "scored"})
	if err != nil {
		t.Fatal(err)
	}
	if got.ID == uuid.Nil || !got.RecordedAt.Equal(fixed) {
		t.Fatalf("not stamped: %+v", got)
	}
	if len(r.entries) != 1 || r.entries[0].ID != got.ID {
		t.Fatalf("repo saw %+v", r.entries)
	}

	keep := uuid.New()
	got, _ = s.Append(context.Background(), dom.Entry{ID: keep, Outcome: "scored"})
	if got.ID != keep {
		t.Fatal("caller id replaced")
	}
}

func TestAppend_RequiresOutcome(t *testing.T) {
	_, err := New(&memRepo{}).Append(context.Background(), dom.Entry{EventID: "e"})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}

func TestRecent_NormalisesQuery(t *testing.T) {
	r := &memRepo{}
	s := New(r)
	cases := []struct {
		in, want dom.RecentQuery
	}{
		{dom.RecentQuery{}, dom.RecentQuery{Limit: DefaultLimit}},
		{dom.RecentQuery{Limit: 9000}, dom.RecentQuery{Limit: MaxLimit}},
		{dom.RecentQuery{Limit: 3, Outcome: " Untiered "}, dom.RecentQuery{Limit: 3, Outcome: "untiered"}},
	}
	for _, tc := range cases {
		if _, err := s.Recent(context.Background(), tc.in); err != nil {
			t.Fatal(err)
		}
		if r.lastQ != tc.want {
			t.Fatalf("in %+v: got %+v want %+v", tc.in, r.lastQ, tc.want)
		}
	}
	if _, err := s.Recent(context.Background(), dom.RecentQuery{Outcome: "a_really_long_outcome_name_that_is_not_real"}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}
