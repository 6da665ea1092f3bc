package cache

import (
	"github.com/gymmawy/gymmawy/internal/config"
	"github.com/gymmawy/gymmawy/internal/logger"
	redisClient "github.com/gymmawy/gymmawy/internal/redis"
)

// CacheType selects the cache backend.
type CacheType string

const (
	CacheTypeInMemory CacheType = "inmemory"
	CacheTypeRedis    CacheType = "redis"
)

// Initialize sets up the cache system for the configured backend. The Redis
// client may be nil when the in-memory backend is selected.
func Initialize(cfg *config.Configuration, client *redisClient.Client, log *logger.Logger) Cache {
	log.Infow("initializing cache", "type", cfg.Cache.Type)

	var c Cache
	switch CacheType(cfg.Cache.Type) {
	case CacheTypeRedis:
		InitializeRedisCache(client, log)
		c = GetRedisCache()
	case CacheTypeInMemory:
		fallthrough
	default:
		InitializeInMemoryCache()
		c = GetInMemoryCache()
	}

	return c
}
