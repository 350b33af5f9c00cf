package setup

import (
	"context"
	"fmt"

	"github.com/plaza-dev/plaza/backend/internal/fanout"
	"github.com/plaza-dev/plaza/backend/internal/handler"
	"github.com/plaza-dev/plaza/backend/internal/service"
	"github.com/plaza-dev/plaza/backend/internal/storage/cache"
	"github.com/plaza-dev/plaza/backend/internal/storage/pg"
	"github.com/plaza-dev/plaza/backend/internal/storage/table"
	"github.com/plaza-dev/plaza/shared/config"
	"github.com/plaza-dev/plaza/shared/jwt"
	"github.com/plaza-dev/plaza/shared/logger"
	mw "github.com/plaza-dev/plaza/shared/middleware"
	"github.com/redis/go-redis/v9"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Tables         *table.Store
	Redis          *redis.Client
	Runner         *fanout.Runner
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *mw.Auth
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	client, err := table.NewClient(ctx, cfg)
	if err != nil {
		storage.Cleanup()
		return nil, fmt.Errorf("table store client: %w", err)
	}
	tables := table.New(client, cfg.Public.Table)
	if cfg.Public.Table.CreateTables {
		if err := tables.EnsureTables(ctx); err != nil {
			storage.Cleanup()
			return nil, fmt.Errorf("table store: %w", err)
		}
	}

	// A nil *redis.Client must not end up inside the KV interface.
	var kv cache.KV
	redisClient := cache.NewRedisClient(cfg)
	if redisClient != nil {
		kv = redisClient
	} else {
		logger.Log.Info("redis address not configured, blocking cache disabled")
	}
	blocking := cache.NewBlockingCache(tables, kv, cfg.BlockingTTL())

	runner := fanout.NewRunner(cfg.Public.Fanout.Workers, cfg.Public.Fanout.QueueSize, cfg.FanoutTimeout())
	applier := fanout.NewApplier(storage)
	effects := fanout.NewEffects(runner, applier, fanout.NewNotifier(blocking, tables, applier))

	content := service.NewContentPolicy(cfg)
	h := handler.New(handler.Services{
		Attitude: service.NewAttitude(storage, effects),
		Comment:  service.NewComment(storage, content, effects, cfg.Public.ListLimit),
		Save:     service.NewSave(storage, effects),
		Post:     service.NewPost(storage, content, effects),
		Notice:   service.NewNotice(tables, storage, cfg.Public.ListLimit),
		Blocking: service.NewBlocking(storage, blocking),
		Follow:   service.NewFollow(storage, tables, effects),
	}, cfg, healthCheckers(storage, tables, redisClient)...)

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Tables:         tables,
		Redis:          redisClient,
		Runner:         runner,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: mw.NewAuth(jwtService),
	}, nil
}

func healthCheckers(storage *pg.Storage, tables *table.Store, redisClient *redis.Client) []handler.HealthChecker {
	checkers := []handler.HealthChecker{storage, tables}
	if redisClient != nil {
		checkers = append(checkers, redisPinger{redisClient})
	}
	return checkers
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close drains pending side effects before the stores go away.
func (d *Dependencies) Close() {
	d.Runner.Close()
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			logger.Log.Error("failed to close redis client", "error", err)
		}
	}
	if err := d.Storage.Cleanup(); err != nil {
		logger.Log.Error("failed to close postgres", "error", err)
	}
}
