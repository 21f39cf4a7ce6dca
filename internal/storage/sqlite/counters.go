package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/josemedina1/Papafactory/internal/ledger"
)

// NextOrderNumber advances the counter of the calendar day containing t and
// returns the formatted ticket number. The upsert makes the read-modify-write
// a single atomic statement, so overlapping finalizations can never issue the
// same number; the first order of a new day starts the counter at 1.
func (s *SQLiteStore) NextOrderNumber(ctx context.Context, t time.Time) (string, error) {
	var counter int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO order_counters (day, counter) VALUES (?, 1)
		 ON CONFLICT(day) DO UPDATE SET counter = counter + 1
		 RETURNING counter`,
		ledger.DayKey(t),
	).Scan(&counter)
	if err != nil {
		return "", fmt.Errorf("failed to advance day counter: %w", err)
	}
	return ledger.FormatNumber(t, counter), nil
}
