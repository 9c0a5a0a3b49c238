package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dcall/lastcall/internal/cdr"
)

// Loader reads the trailing window of completed outbound calls from the
// dialtraffic table to seed the in-memory store at startup. The service only
// ever reads history; live calls arrive over the event bus.
type Loader struct {
	pool       *pgxpool.Pool
	windowDays int
	logger     *slog.Logger
}

func New(ctx context.Context, databaseURL string, windowDays int, logger *slog.Logger) (*Loader, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Loader{pool: pool, windowDays: windowDays, logger: logger}, nil
}

func (l *Loader) Close() {
	l.pool.Close()
}

// Load queries outbound, agent-attributed calls completed within the trailing
// window whose destination is long enough to be external, newest first. Rows
// go through the same normalization as live events, so a row the ingestor
// would reject never seeds the store either.
func (l *Loader) Load(ctx context.Context) ([]cdr.Record, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT uniqueid, channel, dst, to_char(completedate, 'YYYY-MM-DD HH24:MI:SS')
		FROM dialtraffic
		WHERE calltype = 'O'
		  AND agentid <> 0
		  AND length(dst) > 6
		  AND completedate BETWEEN now() - make_interval(days => $1) AND now()
		ORDER BY completedate DESC`,
		l.windowDays,
	)
	if err != nil {
		return nil, fmt.Errorf("query dialtraffic: %w", err)
	}
	defer rows.Close()

	var records []cdr.Record
	for rows.Next() {
		var uniqueID, channel, dst, completed string
		if err := rows.Scan(&uniqueID, &channel, &dst, &completed); err != nil {
			return nil, fmt.Errorf("scan dialtraffic row: %w", err)
		}
		rec, ok := cdr.Normalize(uniqueID, channel, dst, completed)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read dialtraffic rows: %w", err)
	}

	l.logger.Info("historical CDRs loaded", "records", len(records), "window_days", l.windowDays)
	return records, nil
}
