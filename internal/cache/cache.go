package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is the common interface over the in-memory and Redis backends.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)
	Delete(ctx context.Context, key string)
	DeleteByPrefix(ctx context.Context, prefix string)
	Flush(ctx context.Context)
}

// Key prefixes, one per cached concern.
const (
	PrefixPlan         = "plan"
	PrefixProgramme    = "programme"
	PrefixExchangeRate = "exchange_rate"
)

// Key joins a prefix and its parts into a cache key.
func Key(prefix string, parts ...string) string {
	return prefix + ":" + strings.Join(parts, ":")
}
