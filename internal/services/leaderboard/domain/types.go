// Package domain holds leaderboard types and ports
package domain

import "context"

// Namespace is the hash the running totals live under
const Namespace = "leaderboard"

// Entry is one participant total
type Entry struct {
	Rank        int    `json:"rank,omitempty" example:"1"`
	Participant uint64 `json:"participant,string" example:"123"`
	Score       int64  `json:"score" example:"13"`
}

// ResetResult reports what a reset removed
type ResetResult struct {
	Cleared int64 `json:"cleared" example:"42"`
}

// TopQuery bounds a leaderboard read
type TopQuery struct {
	Limit int
}

// ScorePort is the write side used by the claim pipeline
type ScorePort interface {
	Increment(ctx context.Context, participant uint64, delta int64) (int64, error)
}

// ReadPort is the admin side
type ReadPort interface {
	Top(ctx context.Context, q TopQuery) ([]Entry, error)
	Score(ctx context.Context, participant uint64) (Entry, error)
	Reset(ctx context.Context) (ResetResult, error)
}

// ServicePort is the whole leaderboard contract
type ServicePort interface {
	ScorePort
	ReadPort
}
