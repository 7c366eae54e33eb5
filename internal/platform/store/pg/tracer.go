package pg

import (
	"context"
	"strings"
	"time"

	"claimboard/internal/platform/logger"

	"github.com/jackc/pgx/v5"
)

// Tracer logs each statement once it finishes: errors at error, slow ones at warn, the rest at info
type Tracer struct {
	log  logger.Logger
	slow time.Duration
}

// NewTracer logs under component=pg; slow <= 0 disables the warn threshold
func NewTracer(log logger.Logger, slow time.Duration) *Tracer {
	return &Tracer{log: log.With().Str("component", "pg").Logger(), slow: slow}
}

type traceKey struct{}

type started struct {
	sql  string
	args int
	at   time.Time
}

// TraceQueryStart implements pgx.QueryTracer
func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, started{sql: d.SQL, args: len(d.Args), at: time.Now()})
}

// TraceQueryEnd implements pgx.QueryTracer
func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	st, ok := ctx.Value(traceKey{}).(started)
	if !ok {
		return
	}
	elapsed := time.Since(st.at)
	evt := t.log.Info()
	switch {
	case d.Err != nil:
		evt = t.log.Error().Err(d.Err)
	case t.slow > 0 && elapsed >= t.slow:
		evt = t.log.Warn()
	}
	evt.Dur("elapsed", elapsed).
		Str("sql", strings.Join(strings.Fields(st.sql), " ")).
		Int("args", st.args).
		Str("tag", d.CommandTag.String()).
		Msg("pg query")
}
