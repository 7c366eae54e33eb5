// Package repo writes ledger entries to clickhouse, or to the log when no warehouse is wired
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	perr "claimboard/internal/platform/errors"
	"claimboard/internal/platform/logger"
	"claimboard/internal/platform/store"

	dom "claimboard/internal/services/ledger/domain"
)

// Table is the clickhouse table ledger rows land in
const Table = "claim_ledger"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS claim_ledger (
  id          UUID,
  event_id    String,
  participant UInt64,
  tier        LowCardinality(String),
  delta       Int64,
  total       Int64,
  outcome     LowCardinality(String),
  recorded_at DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (recorded_at, id)`

// Repo is the ledger storage contract
type Repo interface {
	Append(ctx context.Context, e dom.Entry) error
	Recent(ctx context.Context, q dom.RecentQuery) ([]dom.Entry, error)
}

// Migrate creates the ledger table when missing
func Migrate(ctx context.Context, ch store.Clickhouse) error {
	if err := ch.Exec(ctx, schemaSQL); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "ledger: migrate")
	}
	return nil
}

type chRepo struct{ ch store.Clickhouse }

// NewCH builds a clickhouse backed ledger
func NewCH(ch store.Clickhouse) Repo { return &chRepo{ch: ch} }

func (r *chRepo) Append(ctx context.Context, e dom.Entry) error {
	row := []any{e.ID, e.EventID, e.Participant, e.Tier, e.Delta, e.Total, e.Outcome, e.RecordedAt.UTC()}
	if err := r.ch.Insert(ctx, Table, [][]any{row}); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "ledger: insert")
	}
	return nil
}

func (r *chRepo) Recent(ctx context.Context, q dom.RecentQuery) ([]dom.Entry, error) {
	sql := `
SELECT id, event_id, participant, tier, delta, total, outcome, recorded_at
FROM claim_ledger`
	args := []any{}
	if q.Outcome != "" {
		sql += `
WHERE outcome = ?`
		args = append(args, q.Outcome)
	}
	sql += `
ORDER BY recorded_at DESC
LIMIT ?`
	args = append(args, q.Limit)

	rows, err := r.ch.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "ledger: query")
	}
	defer rows.Close()

	out := make([]dom.Entry, 0, q.Limit)
	for rows.Next() {
		var (
			e  dom.Entry
			id uuid.UUID
			at time.Time
		)
		if err := rows.Scan(&id, &e.EventID, &e.Participant, &e.Tier, &e.Delta, &e.Total, &e.Outcome, &at); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "ledger: scan")
		}
		e.ID, e.RecordedAt = id, at.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "ledger: rows")
	}
	return out, nil
}

type logRepo struct{ log *logger.Logger }

// NewLog builds a ledger that only writes structured log lines
func NewLog() Repo { return &logRepo{log: logger.Named("ledger")} }

func (r *logRepo) Append(_ context.Context, e dom.Entry) error {
	r.log.Info().
		Str("ledger_id", e.ID.String()).
		Str("event_id", e.EventID).
		Uint64("participant", e.Participant).
		Str("tier", e.Tier).
		Int64("delta", e.Delta).
		Int64("total", e.Total).
		Str("outcome", e.Outcome).
		Time("recorded_at", e.RecordedAt).
		Msg("claim recorded")
	return nil
}

func (r *logRepo) Recent(context.Context, dom.RecentQuery) ([]dom.Entry, error) {
	return nil, perr.Unavailablef("ledger reads need clickhouse")
}
