package request

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateTeamRequest is the request body for creating a team
type CreateTeamRequest struct {
	Name string `json:"name"`
}

// UpdateTeamRequest is the request body for renaming a team
type UpdateTeamRequest struct {
	Name string `json:"name"`
}

// CreatePlayerRequest is the request body for creating a player.
// TeamID is a pointer so a missing field is distinguishable from team 0.
type CreatePlayerRequest struct {
	Name   string `json:"name"`
	TeamID *int64 `json:"team_id"`
}

// UpdatePlayerRequest is the request body for updating a player
type UpdatePlayerRequest struct {
	Name   string `json:"name"`
	TeamID *int64 `json:"team_id"`
}
