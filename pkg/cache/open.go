package cache

import (
	"context"
	"fmt"

	"github.com/matzehuels/dutyflow/pkg/config"
)

// Open creates the backend named by cfg.
func Open(ctx context.Context, cfg config.Cache) (Cache, error) {
	switch cfg.Backend {
	case config.CacheNone, "":
		return NewNullCache(), nil
	case config.CacheMemory:
		return NewMemoryCache(), nil
	case config.CacheFile:
		return NewFileCache(cfg.Dir)
	case config.CacheRedis:
		return NewRedisCache(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}
