// Package store opens the optional backends claimboard keeps state in
// postgres for scores, markers and members when chosen, clickhouse for the ledger, and a key value seam otherwise
package store

import (
	"context"
	"errors"

	"claimboard/internal/platform/logger"
	"claimboard/internal/platform/store/kv"
)

// Store holds whichever backends Open enabled; disabled ones stay nil
type Store struct {
	Log logger.Logger

	PG SQL
	CH Clickhouse
	KV KV
}

// KV holds counters, expiring markers and small documents
type KV = kv.Client

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set; Close must be called
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a write touched
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// SQL is the postgres seam
type SQL interface {
	RowQuerier
	Ping(ctx context.Context) error
	Close() error
}

// Clickhouse is the columnar seam the ledger appends to
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

// Option mutates Store during Open
type Option func(*Store)

// WithLogger sets the logger backends report through
func WithLogger(log logger.Logger) Option {
	return func(s *Store) { s.Log = log }
}

// Open connects the backends cfg enables; on failure anything already opened is closed
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: *logger.Named("store")}
	for _, o := range opts {
		o(s)
	}

	var err error
	if cfg.PG.Enabled {
		if s.PG, err = openPG(ctx, cfg, s.Log); err != nil {
			return nil, err
		}
	}
	if cfg.CH.Enabled {
		if s.CH, err = openCH(ctx, cfg); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	if cfg.KV.Enabled {
		if s.KV, err = openKV(ctx, cfg, s.Log); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

// Close closes every open backend and joins their errors
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.KV != nil {
		errs = append(errs, s.KV.Close())
	}
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if s.PG != nil {
		errs = append(errs, s.PG.Close())
	}
	return errors.Join(errs...)
}
