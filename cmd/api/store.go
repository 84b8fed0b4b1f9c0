package main

import (
	"context"
	"fmt"
	"io"

	"github.com/angelmondragon/luxe-storefront/pkg/config"
	"github.com/angelmondragon/luxe-storefront/pkg/db"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
	"github.com/angelmondragon/luxe-storefront/pkg/migrate"
	"github.com/angelmondragon/luxe-storefront/pkg/redis"
	"github.com/angelmondragon/luxe-storefront/pkg/storage"
	"go.uber.org/multierr"
)

type closers []io.Closer

func (c closers) Close() error {
	var err error
	for i := len(c) - 1; i >= 0; i-- {
		err = multierr.Append(err, c[i].Close())
	}
	return err
}

// openStore builds the visitor store for the configured driver along with whatever
// connections it holds open.
func openStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storage.Store, closers, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		logg.Warn(ctx, "memory storage selected; carts are lost on restart")
		return storage.NewMemoryStore(), nil, nil

	case config.StorageDriverRedis:
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		return storage.NewRedisStore(redisClient, cfg.Redis.EntryTTL), closers{redisClient}, nil

	case config.StorageDriverSQLite, config.StorageDriverPostgres:
		dbClient, err := db.New(ctx, cfg.Storage.Driver, cfg.DB, logg)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap database: %w", err)
		}
		if err := migrate.MaybeAutoRun(ctx, cfg, logg, dbClient); err != nil {
			return nil, nil, multierr.Append(fmt.Errorf("auto migrate: %w", err), dbClient.Close())
		}
		return storage.NewSQLStore(dbClient.DB()), closers{dbClient}, nil
	}
	return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}
