// Package repo stores leaderboard totals in a key value hash or a postgres table
package repo

import (
	"context"
	stdsql "database/sql"
	_ "embed"
	"errors"
	"sort"
	"strconv"

	"claimboard/internal/modkit/repokit"
	perr "claimboard/internal/platform/errors"
	"claimboard/internal/platform/store"

	dom "claimboard/internal/services/leaderboard/domain"
)

//go:embed schema.sql
var schemaSQL string

// Repo is the score storage contract
type Repo interface {
	Increment(ctx context.Context, participant uint64, delta int64) (int64, error)
	Get(ctx context.Context, participant uint64) (int64, bool, error)
	Top(ctx context.Context, limit int) ([]dom.Entry, error)
	Clear(ctx context.Context) (int64, error)
}

// Migrate creates the leaderboard table when missing
func Migrate(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, schemaSQL)
	return perr.FromPostgres(err, "leaderboard: migrate")
}

//
// key value hash: field = participant id, value = total
//

type kvRepo struct {
	c  store.KV
	ns string
}

// NewKV builds a hash backed repo under dom.Namespace
func NewKV(c store.KV) Repo { return &kvRepo{c: c, ns: dom.Namespace} }

func (r *kvRepo) Increment(ctx context.Context, participant uint64, delta int64) (int64, error) {
	return r.c.HIncrBy(ctx, r.ns, strconv.FormatUint(participant, 10), delta)
}

func (r *kvRepo) Get(ctx context.Context, participant uint64) (int64, bool, error) {
	raw, ok, err := r.c.HGet(ctx, r.ns, strconv.FormatUint(participant, 10))
	if err != nil || !ok {
		return 0, false, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, perr.Wrapf(err, perr.ErrorCodeDB, "leaderboard: bad total for %d", participant)
	}
	return n, true, nil
}

// Top reads the whole hash and orders it; the hash is small enough for one round trip
func (r *kvRepo) Top(ctx context.Context, limit int) ([]dom.Entry, error) {
	all, err := r.c.HGetAll(ctx, r.ns)
	if err != nil {
		return nil, err
	}
	out := make([]dom.Entry, 0, len(all))
	for field, raw := range all {
		id, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, dom.Entry{Participant: id, Score: n})
	}
	sortEntries(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *kvRepo) Clear(ctx context.Context) (int64, error) {
	all, err := r.c.HGetAll(ctx, r.ns)
	if err != nil {
		return 0, err
	}
	if _, err := r.c.Del(ctx, r.ns); err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

// sortEntries orders by score desc, then id asc for a stable board
func sortEntries(es []dom.Entry) {
	sort.Slice(es, func(i, j int) bool {
		if es[i].Score != es[j].Score {
			return es[i].Score > es[j].Score
		}
		return es[i].Participant < es[j].Participant
	})
}

//
// postgres
//

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Increment(ctx context.Context, participant uint64, delta int64) (int64, error) {
	const sql = `
insert into leaderboard (participant_id, score)
values ($1, $2)
on conflict (participant_id) do update
  set score = leaderboard.score + excluded.score, updated_at = now()
returning score
`
	total, err := store.Scalar[int64](ctx, r.q, sql, strconv.FormatUint(participant, 10), delta)
	if err != nil {
		return 0, perr.FromPostgres(err, "leaderboard: increment")
	}
	return total, nil
}

func (r *queries) Get(ctx context.Context, participant uint64) (int64, bool, error) {
	const sql = `select score from leaderboard where participant_id = $1`
	n, err := store.Scalar[int64](ctx, r.q, sql, strconv.FormatUint(participant, 10))
	if errors.Is(err, stdsql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, perr.FromPostgres(err, "leaderboard: get")
	}
	return n, true, nil
}

func (r *queries) Top(ctx context.Context, limit int) ([]dom.Entry, error) {
	const sql = `
select participant_id, score
from leaderboard
where score > 0
order by score desc, participant_id::numeric asc
limit $1
`
	out, err := store.Many(ctx, r.q, func(row store.Row) (dom.Entry, error) {
		var id string
		var e dom.Entry
		if err := row.Scan(&id, &e.Score); err != nil {
			return e, err
		}
		n, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return e, perr.Wrapf(err, perr.ErrorCodeDB, "leaderboard: bad participant id %q", id)
		}
		e.Participant = n
		return e, nil
	}, sql, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "leaderboard: top")
	}
	return out, nil
}

func (r *queries) Clear(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `delete from leaderboard`)
	if err != nil {
		return 0, perr.FromPostgres(err, "leaderboard: clear")
	}
	return tag.RowsAffected(), nil
}
