package model

import "time"

// TeamID uniquely identifies a team
type TeamID int64

// Team represents a soccer team
// Teams own their players: deleting a team deletes its players as well
type Team struct {
	ID        TeamID
	Name      string // unique team name
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TeamWithPlayers is a team together with its current roster,
// used by the aggregate teams-with-players query
type TeamWithPlayers struct {
	Team
	Players []Player
}
