package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/cmerin0/PlayersSimpleApp/internal/model"
	"github.com/cmerin0/PlayersSimpleApp/internal/storage"
)

// pgUniqueViolation is the postgres error code for unique constraint violations
const pgUniqueViolation = "23505"

// Storage is a PostgreSQL-backed implementation of the storage interface.
// The *sql.DB pool checks a connection in and out around each call, so no
// session state is shared between requests.
type Storage struct {
	db *sql.DB
}

// New opens a connection pool against the given DSN and verifies it
func New(ctx context.Context, dsn string) (*Storage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB creates a Storage with an existing handle (for testing)
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Close closes the connection pool
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (*model.User, error) {
	user := &model.User{
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password, is_admin) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`,
		username, passwordHash, isAdmin,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrUsernameExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, password, is_admin, created_at, updated_at FROM users WHERE id = $1`, id))
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, password, is_admin, created_at, updated_at FROM users WHERE username = $1`, username))
}

func (s *Storage) scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, password, is_admin, created_at, updated_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// Team operations

func (s *Storage) CreateTeam(ctx context.Context, name string) (*model.Team, error) {
	team := &model.Team{Name: name}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO teams (name) VALUES ($1) RETURNING id, created_at, updated_at`,
		name,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrTeamNameExists
		}
		return nil, fmt.Errorf("insert team: %w", err)
	}

	return team, nil
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	var team model.Team
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM teams WHERE id = $1`, id,
	).Scan(&team.ID, &team.Name, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrTeamNotFound
		}
		return nil, fmt.Errorf("scan team: %w", err)
	}
	return &team, nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM teams ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	teams := []*model.Team{}
	for rows.Next() {
		var team model.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.CreatedAt, &team.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, &team)
	}
	return teams, rows.Err()
}

func (s *Storage) ListTeamsWithPlayers(ctx context.Context) ([]*model.TeamWithPlayers, error) {
	teams, err := s.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[model.TeamID]*model.TeamWithPlayers, len(teams))
	result := make([]*model.TeamWithPlayers, 0, len(teams))
	for _, team := range teams {
		twp := &model.TeamWithPlayers{Team: *team, Players: []model.Player{}}
		byID[team.ID] = twp
		result = append(result, twp)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.name, p.team_id, t.name, p.created_at, p.updated_at FROM players p JOIN teams t ON t.id = p.team_id ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var player model.Player
		if err := rows.Scan(&player.ID, &player.Name, &player.TeamID, &player.TeamName, &player.CreatedAt, &player.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		if twp, ok := byID[player.TeamID]; ok {
			twp.Players = append(twp.Players, player)
		}
	}
	return result, rows.Err()
}

func (s *Storage) UpdateTeam(ctx context.Context, id model.TeamID, name string) (*model.Team, error) {
	var team model.Team
	err := s.db.QueryRowContext(ctx,
		`UPDATE teams SET name = $2, updated_at = now() WHERE id = $1 RETURNING id, name, created_at, updated_at`,
		id, name,
	).Scan(&team.ID, &team.Name, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrTeamNotFound
		}
		if isUniqueViolation(err) {
			return nil, model.ErrTeamNameExists
		}
		return nil, fmt.Errorf("update team: %w", err)
	}
	return &team, nil
}

func (s *Storage) DeleteTeam(ctx context.Context, id model.TeamID) error {
	// ON DELETE CASCADE removes the team's players in the same statement
	res, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if affected == 0 {
		return model.ErrTeamNotFound
	}
	return nil
}

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, name string, teamID model.TeamID) (*model.Player, error) {
	player := &model.Player{Name: name, TeamID: teamID}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO players (name, team_id) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
		name, teamID,
	).Scan(&player.ID, &player.CreatedAt, &player.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert player: %w", err)
	}

	return player, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	err := s.db.QueryRowContext(ctx,
		`SELECT p.id, p.name, p.team_id, t.name, p.created_at, p.updated_at FROM players p JOIN teams t ON t.id = p.team_id WHERE p.id = $1`, id,
	).Scan(&player.ID, &player.Name, &player.TeamID, &player.TeamName, &player.CreatedAt, &player.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.name, p.team_id, t.name, p.created_at, p.updated_at FROM players p JOIN teams t ON t.id = p.team_id ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	players := []*model.Player{}
	for rows.Next() {
		var player model.Player
		if err := rows.Scan(&player.ID, &player.Name, &player.TeamID, &player.TeamName, &player.CreatedAt, &player.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, &player)
	}
	return players, rows.Err()
}

func (s *Storage) UpdatePlayer(ctx context.Context, id model.PlayerID, name string, teamID model.TeamID) (*model.Player, error) {
	var player model.Player
	err := s.db.QueryRowContext(ctx,
		`UPDATE players SET name = $2, team_id = $3, updated_at = now() WHERE id = $1 RETURNING id, name, team_id, created_at, updated_at`,
		id, name, teamID,
	).Scan(&player.ID, &player.Name, &player.TeamID, &player.CreatedAt, &player.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("update player: %w", err)
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if affected == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}
