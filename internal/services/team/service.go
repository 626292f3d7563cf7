package team

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/cmerin0/PlayersSimpleApp/internal/cache"
	"github.com/cmerin0/PlayersSimpleApp/internal/model"
	"github.com/cmerin0/PlayersSimpleApp/internal/storage"
)

// Keys whose snapshots can include team data. Every team mutation
// invalidates both: the plain list and the aggregate with rosters.
var invalidationKeys = []string{cache.KeyAllTeams, cache.KeyTeamsWithPlayers}

// Service handles team operations, fronting storage with the cache-aside
// store for the two read-heavy list queries
type Service struct {
	storage storage.Storage
	cache   *cache.Store
	logger  *slog.Logger
}

// New creates a new team service
func New(store storage.Storage, cacheStore *cache.Store, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		cache:   cacheStore,
		logger:  logger,
	}
}

// List returns all teams, served from cache when a fresh snapshot exists.
// The get-miss-put sequence is not atomic: concurrent misses may both query
// storage and both write the cache, last writer wins. Both writes are
// faithful snapshots, so the race costs redundant work but never staleness
// beyond the TTL.
func (s *Service) List(ctx context.Context) ([]*model.Team, cache.Source, error) {
	var teams []*model.Team
	if s.cacheGet(ctx, cache.KeyAllTeams, &teams) {
		return teams, cache.SourceCache, nil
	}

	teams, err := s.storage.ListTeams(ctx)
	if err != nil {
		return nil, "", err
	}

	s.cachePut(ctx, cache.KeyAllTeams, teams)
	return teams, cache.SourceDatabase, nil
}

// ListWithPlayers returns all teams with their rosters, cache-aside
func (s *Service) ListWithPlayers(ctx context.Context) ([]*model.TeamWithPlayers, cache.Source, error) {
	var teams []*model.TeamWithPlayers
	if s.cacheGet(ctx, cache.KeyTeamsWithPlayers, &teams) {
		return teams, cache.SourceCache, nil
	}

	teams, err := s.storage.ListTeamsWithPlayers(ctx)
	if err != nil {
		return nil, "", err
	}

	s.cachePut(ctx, cache.KeyTeamsWithPlayers, teams)
	return teams, cache.SourceDatabase, nil
}

// Get returns a single team by id, always from storage
func (s *Service) Get(ctx context.Context, id model.TeamID) (*model.Team, error) {
	return s.storage.GetTeam(ctx, id)
}

// Create inserts a team and invalidates the snapshots its presence changes
func (s *Service) Create(ctx context.Context, name string) (*model.Team, error) {
	team, err := s.storage.CreateTeam(ctx, name)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return team, nil
}

// Update renames a team and invalidates dependent snapshots
func (s *Service) Update(ctx context.Context, id model.TeamID, name string) (*model.Team, error) {
	team, err := s.storage.UpdateTeam(ctx, id, name)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return team, nil
}

// Delete removes a team (cascading to its players) and invalidates
// dependent snapshots
func (s *Service) Delete(ctx context.Context, id model.TeamID) error {
	if err := s.storage.DeleteTeam(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// cacheGet attempts to load a snapshot into dest, reporting whether it hit.
// Backend failures and corrupt payloads count as misses.
func (s *Service) cacheGet(ctx context.Context, key string, dest any) bool {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("cache read failed, falling back to database",
				slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("discarding undecodable cache entry",
			slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

// cachePut stores a snapshot under key; failures are logged, never returned
func (s *Service) cachePut(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := s.cache.Put(ctx, key, data, s.cache.TTL(key)); err != nil {
		s.logger.Warn("cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// invalidate drops every key a team mutation can affect. Runs only after
// the storage commit succeeded; a failed invalidation is logged and the
// write still counts as successful.
func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, invalidationKeys...); err != nil {
		s.logger.Warn("cache invalidation failed",
			slog.Any("keys", invalidationKeys), slog.String("error", err.Error()))
	}
}
