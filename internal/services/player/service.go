package player

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/cmerin0/PlayersSimpleApp/internal/cache"
	"github.com/cmerin0/PlayersSimpleApp/internal/model"
	"github.com/cmerin0/PlayersSimpleApp/internal/storage"
)

// ErrTeamMissing rejects a player write whose team reference does not
// resolve; surfaced as a validation failure, not a not-found
var ErrTeamMissing = errors.New("team does not exist")

// Keys whose snapshots can include player data. The aggregate
// teams-with-players key embeds rosters, so player mutations must drop it
// along with the plain player list.
var invalidationKeys = []string{cache.KeyAllPlayers, cache.KeyTeamsWithPlayers}

// Service handles player operations, fronting storage with the cache-aside
// store for the player list query
type Service struct {
	storage storage.Storage
	cache   *cache.Store
	logger  *slog.Logger
}

// New creates a new player service
func New(store storage.Storage, cacheStore *cache.Store, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		cache:   cacheStore,
		logger:  logger,
	}
}

// List returns all players, served from cache when a fresh snapshot exists
func (s *Service) List(ctx context.Context) ([]*model.Player, cache.Source, error) {
	var players []*model.Player
	if s.cacheGet(ctx, cache.KeyAllPlayers, &players) {
		return players, cache.SourceCache, nil
	}

	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, "", err
	}

	s.cachePut(ctx, cache.KeyAllPlayers, players)
	return players, cache.SourceDatabase, nil
}

// Get returns a single player by id, always from storage
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// Create inserts a player after verifying the referenced team exists,
// then invalidates the snapshots its presence changes
func (s *Service) Create(ctx context.Context, name string, teamID model.TeamID) (*model.Player, error) {
	team, err := s.requireTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	player, err := s.storage.CreatePlayer(ctx, name, teamID)
	if err != nil {
		return nil, err
	}
	player.TeamName = team.Name

	s.invalidate(ctx)
	return player, nil
}

// Update moves or renames a player; the target team must exist
func (s *Service) Update(ctx context.Context, id model.PlayerID, name string, teamID model.TeamID) (*model.Player, error) {
	if _, err := s.storage.GetPlayer(ctx, id); err != nil {
		return nil, err
	}
	team, err := s.requireTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	player, err := s.storage.UpdatePlayer(ctx, id, name, teamID)
	if err != nil {
		return nil, err
	}
	player.TeamName = team.Name

	s.invalidate(ctx)
	return player, nil
}

// Delete removes a player and invalidates dependent snapshots
func (s *Service) Delete(ctx context.Context, id model.PlayerID) error {
	if err := s.storage.DeletePlayer(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// requireTeam resolves a team reference, mapping absence to ErrTeamMissing
func (s *Service) requireTeam(ctx context.Context, teamID model.TeamID) (*model.Team, error) {
	team, err := s.storage.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, model.ErrTeamNotFound) {
			return nil, ErrTeamMissing
		}
		return nil, err
	}
	return team, nil
}

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

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, invalidationKeys...); err != nil {
		s.logger.Warn("cache invalidation failed",
			slog.Any("keys", invalidationKeys), slog.String("error", err.Error()))
	}
}
