package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/plaza-dev/plaza/shared/domain"
	internal_errors "github.com/plaza-dev/plaza/shared/errors"
)

// mergeCounters adds the deltas in the jsonb argument to t.counters.
const mergeCounters = `t.counters || (
	SELECT jsonb_object_agg(d.key, COALESCE((t.counters->>d.key)::bigint, 0) + d.value::bigint)
	FROM jsonb_each_text(%s) AS d)`

func deltas(fields []string) ([]byte, error) {
	m := make(map[string]int64, len(fields))
	for _, f := range fields {
		m[f]++
	}
	return json.Marshal(m)
}

// Increment adds one to every field of the target record atomically.
// Statistics records are created on first use; posts and comments must exist.
func (s *Storage) Increment(ctx context.Context, inc domain.Increment) error {
	if len(inc.Fields) == 0 {
		return errors.New("increment without fields")
	}
	delta, err := deltas(inc.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode increment: %w", err)
	}

	table := pq.QuoteIdentifier(string(inc.Collection))
	switch {
	case inc.Collection.IsStatistics():
		query := fmt.Sprintf(`
			INSERT INTO %s AS t (id, counters) VALUES ($1, $2::jsonb)
			ON CONFLICT (id) DO UPDATE SET counters = `+mergeCounters,
			table, "EXCLUDED.counters")
		if _, err := s.db.ExecContext(ctx, query, inc.Key, delta); err != nil {
			return fmt.Errorf("failed to increment %s: %w", inc.Collection, err)
		}
		return nil
	case inc.Collection == domain.PostRecords || inc.Collection == domain.CommentRecords:
		query := fmt.Sprintf("UPDATE %s AS t SET counters = "+mergeCounters+" WHERE t.id = $1",
			table, "$2::jsonb")
		res, err := s.db.ExecContext(ctx, query, inc.Key, delta)
		if err != nil {
			return fmt.Errorf("failed to increment %s: %w", inc.Collection, err)
		}
		return requireAffected(res, fmt.Errorf("%s record %s not found", inc.Collection, inc.Key))
	}
	return fmt.Errorf("unknown collection %q", inc.Collection)
}

// GetStatistics returns the counters of a statistics record, empty if the
// record was never incremented.
func (s *Storage) GetStatistics(ctx context.Context, collection domain.Collection, key string) (domain.Counters, error) {
	if !collection.IsStatistics() {
		return nil, internal_errors.BadRequest("Unknown statistics collection")
	}
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT counters FROM %s WHERE id = $1", pq.QuoteIdentifier(string(collection))),
		key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Counters{}, nil
		}
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}
	return scanCounters(raw)
}
