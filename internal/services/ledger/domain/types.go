// Package domain holds claim ledger types and ports
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded claim outcome
type Entry struct {
	ID          uuid.UUID `json:"id" example:"4b1e4f8e-2c1f-4f57-9d9e-3f3c0d7f7a11"`
	EventID     string    `json:"event_id" example:"1342210000000000001"`
	Participant uint64    `json:"participant,string,omitempty" example:"123"`
	Tier        string    `json:"tier,omitempty" example:"SSR"`
	Delta       int64     `json:"delta" example:"13"`
	Total       int64     `json:"total" example:"26"`
	Outcome     string    `json:"outcome" example:"scored"`
	RecordedAt  time.Time `json:"recorded_at" example:"2026-01-02T15:04:05Z"`
}

// RecentQuery bounds a ledger read
type RecentQuery struct {
	Limit   int
	Outcome string
}

// ServicePort is the ledger contract
type ServicePort interface {
	Append(ctx context.Context, e Entry) (Entry, error)
	Recent(ctx context.Context, q RecentQuery) ([]Entry, error)
}
