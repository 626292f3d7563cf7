package cache

import "time"

// Config holds Redis connection settings and per-query TTLs
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTLs per logical query key. Deliberately short: there is no push-based
	// invalidation channel beyond direct Invalidate calls from this process,
	// so the TTL bounds the worst-case staleness window.
	AllTeamsTTL         time.Duration
	TeamsWithPlayersTTL time.Duration
	AllPlayersTTL       time.Duration
}

// DefaultConfig returns sensible defaults for cache configuration
func DefaultConfig() Config {
	return Config{
		URL:                 "redis://localhost:6379",
		PoolSize:            10,
		MinIdleConns:        2,
		AllTeamsTTL:         15 * time.Second,
		TeamsWithPlayersTTL: 15 * time.Second,
		AllPlayersTTL:       60 * time.Second,
	}
}
