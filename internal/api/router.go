package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cmerin0/PlayersSimpleApp/internal/api/handler"
	"github.com/cmerin0/PlayersSimpleApp/internal/api/middleware"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/auth"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/player"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/team"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/token"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	AuthService   *auth.Service
	TeamService   *team.Service
	PlayerService *player.Service
	TokenConfig   token.Config
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.TokenConfig)
	userHandler := handler.NewUserHandler(cfg.AuthService)
	teamHandler := handler.NewTeamHandler(cfg.TeamService)
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	adminMiddleware := middleware.RequireAdmin(cfg.AuthService)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Auth routes (public)
	r.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	r.HandleFunc("/refresh", authHandler.Refresh).Methods(http.MethodPost)

	// User routes (access token + admin flag required)
	users := r.PathPrefix("/users").Subrouter()
	users.Use(authMiddleware)
	users.Use(adminMiddleware)
	users.HandleFunc("", userHandler.List).Methods(http.MethodGet)

	// Team routes. No auth, matching the observed behavior of the service:
	// team and player data is treated as public.
	r.HandleFunc("/teams", teamHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/teams", teamHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/teams/players", teamHandler.ListWithPlayers).Methods(http.MethodGet)
	r.HandleFunc("/teams/{id}", teamHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/teams/{id}", teamHandler.Update).Methods(http.MethodPut)
	r.HandleFunc("/teams/{id}", teamHandler.Delete).Methods(http.MethodDelete)

	// Player routes (public, same rationale)
	r.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/players/{id}", playerHandler.Update).Methods(http.MethodPut)
	r.HandleFunc("/players/{id}", playerHandler.Delete).Methods(http.MethodDelete)

	// Health check endpoint
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
