package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/plaza-dev/plaza/shared/config"
	"github.com/plaza-dev/plaza/shared/logger"
	sharedpg "github.com/plaza-dev/plaza/shared/storage/pg"
)

type Storage struct {
	db  *sql.DB
	cfg *config.Config
}

func New(cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to database", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	db, err := sharedpg.Connect(cfg, sharedpg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to database")
	return &Storage{db: db, cfg: cfg}, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) withTx(ctx context.Context, fn func(q Querier) error) error {
	return sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(tx)
	})
}

type Querier = sharedpg.Querier

// counters decodes a jsonb counters column.
func scanCounters(raw []byte) (map[string]int64, error) {
	counters := map[string]int64{}
	if len(raw) == 0 {
		return counters, nil
	}
	if err := json.Unmarshal(raw, &counters); err != nil {
		return nil, fmt.Errorf("failed to decode counters: %w", err)
	}
	return counters, nil
}
