package storage

import (
	"context"

	"github.com/cmerin0/PlayersSimpleApp/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (*model.User, error)
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)

	// Team operations
	CreateTeam(ctx context.Context, name string) (*model.Team, error)
	GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error)
	ListTeams(ctx context.Context) ([]*model.Team, error)
	ListTeamsWithPlayers(ctx context.Context) ([]*model.TeamWithPlayers, error)
	UpdateTeam(ctx context.Context, id model.TeamID, name string) (*model.Team, error)
	// DeleteTeam removes the team and, by ownership, all of its players
	DeleteTeam(ctx context.Context, id model.TeamID) error

	// Player operations
	CreatePlayer(ctx context.Context, name string, teamID model.TeamID) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	UpdatePlayer(ctx context.Context, id model.PlayerID, name string, teamID model.TeamID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	Close() error
}
