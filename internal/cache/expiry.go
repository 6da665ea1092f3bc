package cache

import "time"

const (
	ExpiryDefaultInMemory = 30 * time.Minute
	ExpiryDefaultRedis    = 5 * time.Minute

	// Live exchange rates stay fresh for an hour before a refetch.
	ExpiryExchangeRates = time.Hour
)
