package store

import (
	"context"

	"claimboard/internal/platform/store/ch"
)

// chSeam exposes *ch.CH as the Clickhouse seam
type chSeam struct{ *ch.CH }

func (c chSeam) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := c.CH.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

// chRows drops the error from Close so driver rows fit Rows
type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
