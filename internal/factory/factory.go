package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/cmerin0/PlayersSimpleApp/internal/cache"
	"github.com/cmerin0/PlayersSimpleApp/internal/config"
	"github.com/cmerin0/PlayersSimpleApp/internal/dependencies/clock"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/auth"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/player"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/team"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/token"
	"github.com/cmerin0/PlayersSimpleApp/internal/storage"
	"github.com/cmerin0/PlayersSimpleApp/internal/storage/memory"
	"github.com/cmerin0/PlayersSimpleApp/internal/storage/postgres"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage
	Cache   *cache.Store
	Clock   clock.Clock

	TokenService  *token.Service
	AuthService   *auth.Service
	TeamService   *team.Service
	PlayerService *player.Service

	TokenConfig token.Config
}

// New creates a new application with all dependencies wired from config
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	switch cfg.StorageType {
	case StorageTypePostgres:
		pg, err := postgres.New(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		store = pg
	case StorageTypeMemory:
		store = memory.New()
	default:
		return nil, errors.New("invalid StorageType: must be 'postgres' or 'memory'")
	}

	cacheCfg := cache.DefaultConfig()
	cacheCfg.URL = cfg.RedisURL
	cacheCfg.AllTeamsTTL = cfg.TeamListTTL
	cacheCfg.TeamsWithPlayersTTL = cfg.TeamsWithPlayersTTL
	cacheCfg.AllPlayersTTL = cfg.PlayerListTTL

	cacheStore, err := cache.New(cacheCfg)
	if err != nil {
		return nil, err
	}

	tokenCfg := token.Config{
		Secret:     cfg.SecretKey,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}

	return NewWithDependencies(store, cacheStore, clock.New(), tokenCfg, logger), nil
}

// NewWithDependencies creates an App with the given dependencies (useful for
// testing with memory storage, a miniredis-backed cache, or a mock clock)
func NewWithDependencies(store storage.Storage, cacheStore *cache.Store, clk clock.Clock, tokenCfg token.Config, logger *slog.Logger) *App {
	tokenService := token.New(tokenCfg, clk)
	authService := auth.New(store, tokenService)
	teamService := team.New(store, cacheStore, logger)
	playerService := player.New(store, cacheStore, logger)

	return &App{
		Storage:       store,
		Cache:         cacheStore,
		Clock:         clk,
		TokenService:  tokenService,
		AuthService:   authService,
		TeamService:   teamService,
		PlayerService: playerService,
		TokenConfig:   tokenCfg,
	}
}
