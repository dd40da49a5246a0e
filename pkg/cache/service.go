package cache

import "time"

// CacheService is the response cache used by read-heavy public endpoints.
type CacheService interface {
	// Get returns the cached value and whether it was present.
	Get(key string) (interface{}, bool)

	// Set stores value for duration; zero uses the cache default.
	Set(key string, value interface{}, duration time.Duration)

	Delete(key string)
}
