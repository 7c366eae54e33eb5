// Package repo stores members as json in a key value store or as postgres rows
package repo

import (
	"context"
	_ "embed"
	"encoding/json"
	"strconv"

	"claimboard/internal/modkit/repokit"
	perr "claimboard/internal/platform/errors"
	"claimboard/internal/platform/store"

	dom "claimboard/internal/services/members/domain"
)

//go:embed schema.sql
var schemaSQL string

// Repo is the member storage contract
type Repo interface {
	Upsert(ctx context.Context, m dom.Member) error
	Get(ctx context.Context, id uint64) (dom.Member, bool, error)
	Delete(ctx context.Context, id uint64) (bool, error)
}

// Migrate creates the members table when missing
func Migrate(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, schemaSQL)
	return perr.FromPostgres(err, "members: migrate")
}

// Key is the key value location of a member record
func Key(id uint64) string { return "member:" + strconv.FormatUint(id, 10) }

type kvRepo struct{ c store.KV }

// NewKV builds a repo that keeps one json document per member
func NewKV(c store.KV) Repo { return &kvRepo{c: c} }

func (r *kvRepo) Upsert(ctx context.Context, m dom.Member) error {
	b, err := json.Marshal(m)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "members: encode")
	}
	return r.c.Set(ctx, Key(m.ID), string(b), 0)
}

func (r *kvRepo) Get(ctx context.Context, id uint64) (dom.Member, bool, error) {
	raw, ok, err := r.c.Get(ctx, Key(id))
	if err != nil || !ok {
		return dom.Member{}, false, err
	}
	var m dom.Member
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return dom.Member{}, false, perr.Wrapf(err, perr.ErrorCodeJSON, "members: decode %d", id)
	}
	return m, true, nil
}

func (r *kvRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	n, err := r.c.Del(ctx, Key(id))
	return n > 0, err
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Upsert(ctx context.Context, m dom.Member) error {
	const sql = `
insert into members (id, name, roles)
values ($1, $2, $3)
on conflict (id) do update
  set name = excluded.name, roles = excluded.roles, updated_at = now()
`
	roles := m.Roles
	if roles == nil {
		roles = []string{}
	}
	_, err := r.q.Exec(ctx, sql, strconv.FormatUint(m.ID, 10), m.Name, roles)
	return perr.FromPostgres(err, "members: upsert")
}

func (r *queries) Get(ctx context.Context, id uint64) (dom.Member, bool, error) {
	const sql = `select name, roles from members where id = $1`
	m, err := store.One(ctx, r.q, func(row store.Row) (dom.Member, error) {
		out := dom.Member{ID: id}
		err := row.Scan(&out.Name, &out.Roles)
		return out, err
	}, sql, strconv.FormatUint(id, 10))
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return dom.Member{}, false, nil
	}
	if err != nil {
		return dom.Member{}, false, perr.FromPostgres(err, "members: get")
	}
	return m, true, nil
}

func (r *queries) Delete(ctx context.Context, id uint64) (bool, error) {
	tag, err := r.q.Exec(ctx, `delete from members where id = $1`, strconv.FormatUint(id, 10))
	if err != nil {
		return false, perr.FromPostgres(err, "members: delete")
	}
	return tag.RowsAffected() > 0, nil
}
