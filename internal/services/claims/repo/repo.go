// Package repo provides dedup marker storage for claims
package repo

import (
	"context"
	stdsql "database/sql"
	_ "embed"
	"errors"
	"time"

	"claimboard/internal/modkit/repokit"
	perr "claimboard/internal/platform/errors"
	"claimboard/internal/platform/store"
)

//go:embed schema.sql
var schemaSQL string

// Repo is the marker store contract
type Repo interface {
	// SetIfAbsent creates key with expiry ttl and reports whether this call created it
	SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// SweepExpired deletes up to limit expired markers; stores with native expiry return 0
	SweepExpired(ctx context.Context, limit int) (int64, error)
}

// markerValue is stored for presence only
const markerValue = "1"

type kvRepo struct{ c store.KV }

// NewKV builds the redis or memory marker store
func NewKV(c store.KV) Repo { return &kvRepo{c: c} }

func (r *kvRepo) SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.c.SetNX(ctx, key, markerValue, ttl)
}

func (r *kvRepo) SweepExpired(context.Context, int) (int64, error) { return 0, nil }

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Migrate creates the marker table when missing
func Migrate(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, schemaSQL)
	return perr.FromPostgres(err, "claims: migrate")
}

// SetIfAbsent inserts the marker or revives an expired one in a single statement
// a live row makes the upsert a no op, so no row comes back
func (r *queries) SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	const sql = `
insert into claim_markers (key, expires_at)
values ($1, now() + make_interval(secs => $2))
on conflict (key) do update
  set created_at = now(), expires_at = excluded.expires_at
  where claim_markers.expires_at <= now()
returning key
`
	var got string
	err := r.q.QueryRow(ctx, sql, key, ttl.Seconds()).Scan(&got)
	if errors.Is(err, stdsql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, perr.FromPostgres(err, "claims: set marker")
	}
	return true, nil
}

func (r *queries) SweepExpired(ctx context.Context, limit int) (int64, error) {
	if limit <= 0 {
		limit = 1000
	}
	const sql = `
delete from claim_markers
where key in (
  select key from claim_markers
  where expires_at <= now()
  order by expires_at
  limit $1
)
`
	tag, err := r.q.Exec(ctx, sql, limit)
	if err != nil {
		return 0, perr.FromPostgres(err, "claims: sweep markers")
	}
	return tag.RowsAffected(), nil
}
