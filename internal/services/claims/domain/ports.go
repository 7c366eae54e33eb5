package domain

import (
	"context"
	"time"
)

// EventPort is what the ingest surface drives
type EventPort interface {
	HandleCreate(ctx context.Context, ev ClaimEvent) (Outcome, error)
	HandleEdit(ctx context.Context, ev ClaimEvent) (Outcome, error)
}

// MarkerPort is the atomic set-if-absent-with-expiry primitive behind the dedup gate
// it reports true only for the caller that created key
type MarkerPort interface {
	SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// ScorePort atomically adds delta to a participant total and returns the new total
type ScorePort interface {
	Increment(ctx context.Context, id ParticipantID, delta int64) (int64, error)
}

// ParticipantPort resolves a participant in the community; ok is false when unknown
type ParticipantPort interface {
	Lookup(ctx context.Context, id ParticipantID) (p Participant, ok bool, err error)
}

// LedgerPort keeps a record of claim outcomes
type LedgerPort interface {
	Record(ctx context.Context, o Outcome) error
}
