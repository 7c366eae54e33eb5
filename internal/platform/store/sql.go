package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// pgSQL exposes a pgx pool as the SQL seam
// pgconn.CommandTag, pgx.Rows and pgx.Row already satisfy the seam's result types
type pgSQL struct{ pool *pgxpool.Pool }

func (p pgSQL) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}

func (p pgSQL) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

func (p pgSQL) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

func (p pgSQL) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p pgSQL) Close() error {
	p.pool.Close()
	return nil
}
