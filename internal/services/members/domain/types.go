// Package domain holds the member directory types and ports
package domain

import "context"

// Member is a participant known to the community
type Member struct {
	ID    uint64   `json:"id,string" example:"123"`
	Name  string   `json:"name,omitempty" validate:"max=100" example:"kaz"`
	Roles []string `json:"roles" validate:"max=50,dive,snowflake" example:"1342202221558763571"`
}

// PutInput is the upsert payload; the id comes from the path
type PutInput struct {
	Name  string   `json:"name" validate:"max=100"`
	Roles []string `json:"roles" validate:"max=50,dive,snowflake"`
}

// ServicePort is the member directory contract
type ServicePort interface {
	Put(ctx context.Context, m Member) (Member, error)
	Get(ctx context.Context, id uint64) (Member, error)
	Find(ctx context.Context, id uint64) (Member, bool, error)
	Delete(ctx context.Context, id uint64) error
}
