package model

import "time"

// PlayerID uniquely identifies a player
type PlayerID int64

// Player represents a squad member belonging to exactly one team.
// TeamID is a required foreign key: a player cannot exist without a team,
// and writes referencing a missing team are rejected before they reach storage.
type Player struct {
	ID        PlayerID
	Name      string
	TeamID    TeamID
	TeamName  string // denormalized for list responses, filled by queries
	CreatedAt time.Time
	UpdatedAt time.Time
}
