package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmerin0/PlayersSimpleApp/internal/model"
	"github.com/cmerin0/PlayersSimpleApp/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Used by tests and as a no-postgres development mode.
type Storage struct {
	mu sync.RWMutex

	users   map[model.UserID]*model.User
	teams   map[model.TeamID]*model.Team
	players map[model.PlayerID]*model.Player

	nextUserID   model.UserID
	nextTeamID   model.TeamID
	nextPlayerID model.PlayerID
}

// New creates a new in-memory storage
func New() *Storage {
	return &Storage{
		users:        make(map[model.UserID]*model.User),
		teams:        make(map[model.TeamID]*model.Team),
		players:      make(map[model.PlayerID]*model.Player),
		nextUserID:   1,
		nextTeamID:   1,
		nextPlayerID: 1,
	}
}

// Close is a no-op for memory storage
func (s *Storage) Close() error {
	return nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(_ context.Context, username, passwordHash string, isAdmin bool) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return nil, model.ErrUsernameExists
		}
	}

	now := time.Now()
	user := &model.User{
		ID:           s.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.nextUserID++
	s.users[user.ID] = user

	clone := *user
	return &clone, nil
}

func (s *Storage) GetUser(_ context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *Storage) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (s *Storage) ListUsers(_ context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		clone := *u
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Team operations

func (s *Storage) CreateTeam(_ context.Context, name string) (*model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.teams {
		if t.Name == name {
			return nil, model.ErrTeamNameExists
		}
	}

	now := time.Now()
	team := &model.Team{
		ID:        s.nextTeamID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextTeamID++
	s.teams[team.ID] = team

	clone := *team
	return &clone, nil
}

func (s *Storage) GetTeam(_ context.Context, id model.TeamID) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	clone := *team
	return &clone, nil
}

func (s *Storage) ListTeams(_ context.Context) ([]*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	teams := make([]*model.Team, 0, len(s.teams))
	for _, t := range s.teams {
		clone := *t
		teams = append(teams, &clone)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (s *Storage) ListTeamsWithPlayers(_ context.Context) ([]*model.TeamWithPlayers, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.TeamWithPlayers, 0, len(s.teams))
	for _, t := range s.teams {
		twp := &model.TeamWithPlayers{Team: *t, Players: []model.Player{}}
		for _, p := range s.players {
			if p.TeamID == t.ID {
				player := *p
				player.TeamName = t.Name
				twp.Players = append(twp.Players, player)
			}
		}
		sort.Slice(twp.Players, func(i, j int) bool { return twp.Players[i].ID < twp.Players[j].ID })
		result = append(result, twp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Storage) UpdateTeam(_ context.Context, id model.TeamID, name string) (*model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	for _, t := range s.teams {
		if t.ID != id && t.Name == name {
			return nil, model.ErrTeamNameExists
		}
	}

	team.Name = name
	team.UpdatedAt = time.Now()

	clone := *team
	return &clone, nil
}

func (s *Storage) DeleteTeam(_ context.Context, id model.TeamID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[id]; !ok {
		return model.ErrTeamNotFound
	}
	delete(s.teams, id)

	// Ownership is exclusive: players cannot outlive their team
	for pid, p := range s.players {
		if p.TeamID == id {
			delete(s.players, pid)
		}
	}
	return nil
}

// Player operations

func (s *Storage) CreatePlayer(_ context.Context, name string, teamID model.TeamID) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[teamID]
	if !ok {
		return nil, model.ErrTeamNotFound
	}

	now := time.Now()
	player := &model.Player{
		ID:        s.nextPlayerID,
		Name:      name,
		TeamID:    teamID,
		TeamName:  team.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextPlayerID++
	s.players[player.ID] = player

	clone := *player
	return &clone, nil
}

func (s *Storage) GetPlayer(_ context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	clone := *player
	if team, ok := s.teams[player.TeamID]; ok {
		clone.TeamName = team.Name
	}
	return &clone, nil
}

func (s *Storage) ListPlayers(_ context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		clone := *p
		if team, ok := s.teams[p.TeamID]; ok {
			clone.TeamName = team.Name
		}
		players = append(players, &clone)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func (s *Storage) UpdatePlayer(_ context.Context, id model.PlayerID, name string, teamID model.TeamID) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	team, ok := s.teams[teamID]
	if !ok {
		return nil, model.ErrTeamNotFound
	}

	player.Name = name
	player.TeamID = teamID
	player.TeamName = team.Name
	player.UpdatedAt = time.Now()

	clone := *player
	return &clone, nil
}

func (s *Storage) DeletePlayer(_ context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[id]; !ok {
		return model.ErrPlayerNotFound
	}
	delete(s.players, id)
	return nil
}
