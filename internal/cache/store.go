package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Errors
var (
	// ErrMiss means the key is absent or its TTL has elapsed. Absence is
	// always safe: callers fall back to the source of truth.
	ErrMiss = errors.New("cache miss")

	// ErrUnavailable means the cache backend could not be reached. Read
	// callers treat this as a miss; write callers log and proceed, since a
	// stale-but-bounded entry is preferable to failing a committed write.
	ErrUnavailable = errors.New("cache unavailable")
)

// Store is a Redis-backed cache-aside store for query result snapshots.
// It is never a source of truth: every value is a faithful repository
// snapshot at write time, and expiry is enforced by Redis's own TTL
// eviction rather than by re-checking timestamps here.
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new cache store and verifies the connection
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{client: client, cfg: cfg}, nil
}

// NewWithClient creates a cache store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Get returns the snapshot stored under the logical key, if present and
// unexpired. Returns ErrMiss when absent, ErrUnavailable when the backend
// cannot be reached.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, queryKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return data, nil
}

// Put stores a snapshot under the logical key, resetting its TTL
func (s *Store) Put(ctx context.Context, key string, snapshot []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, queryKey(key), snapshot, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Invalidate removes the given logical keys regardless of remaining TTL.
// Called strictly after a successful repository commit, never before: an
// invalidate-then-commit ordering would let a concurrent read repopulate
// the cache with the pre-commit value for a full TTL.
func (s *Store) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	redisKeys := make([]string, len(keys))
	for i, k := range keys {
		redisKeys[i] = queryKey(k)
	}
	if err := s.client.Del(ctx, redisKeys...).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// TTL returns the configured TTL for a logical query key
func (s *Store) TTL(key string) time.Duration {
	switch key {
	case KeyAllTeams:
		return s.cfg.AllTeamsTTL
	case KeyTeamsWithPlayers:
		return s.cfg.TeamsWithPlayersTTL
	case KeyAllPlayers:
		return s.cfg.AllPlayersTTL
	default:
		return 0
	}
}
