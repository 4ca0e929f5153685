package database

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type queryStartKey struct{}

type queryStart struct {
	sql string
	at  time.Time
}

// queryTracer logs failed queries and queries slower than threshold.
type queryTracer struct {
	threshold time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func newQueryTracer(threshold time.Duration, logger zerolog.Logger) *queryTracer {
	return &queryTracer{
		threshold: threshold,
		logger:    logger.With().Str("component", "pgx").Logger(),
		now:       time.Now,
	}
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, at: t.now()})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := t.now().Sub(start.at)

	switch {
	case data.Err != nil:
		t.logger.Debug().Err(data.Err).Dur("elapsed", elapsed).Str("sql", compact(start.sql)).Msg("query failed")
	case elapsed >= t.threshold:
		t.logger.Warn().
			Dur("elapsed", elapsed).
			Int64("rows", data.CommandTag.RowsAffected()).
			Str("sql", compact(start.sql)).
			Msg("slow query")
	}
}

// compact collapses whitespace so multi-line SQL logs on one line.
func compact(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
