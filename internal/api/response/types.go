package response

import (
	"github.com/cmerin0/PlayersSimpleApp/internal/cache"
	"github.com/cmerin0/PlayersSimpleApp/internal/model"
)

// MessageResponse carries a plain status message
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse echoes the issued token pair; the same tokens are also set
// as cookies on the response
type LoginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse carries a freshly minted access token
type RefreshResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

// User represents a user in API responses; the password hash never leaves
// the server
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:       int64(u.ID),
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}

// UsersFromModel converts a slice of model users
func UsersFromModel(users []*model.User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = UserFromModel(u)
	}
	return out
}

// Team represents a team in API responses
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TeamFromModel converts a model.Team to a response Team
func TeamFromModel(t *model.Team) Team {
	return Team{
		ID:   int64(t.ID),
		Name: t.Name,
	}
}

// Player represents a player in API responses; the team is rendered by
// name rather than id
type Player struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Team string `json:"team"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:   int64(p.ID),
		Name: p.Name,
		Team: p.TeamName,
	}
}

// TeamWithPlayers is a team with its roster inlined
type TeamWithPlayers struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Players []Player `json:"players"`
}

// TeamWithPlayersFromModel converts a model.TeamWithPlayers
func TeamWithPlayersFromModel(t *model.TeamWithPlayers) TeamWithPlayers {
	players := make([]Player, len(t.Players))
	for i := range t.Players {
		players[i] = PlayerFromModel(&t.Players[i])
	}
	return TeamWithPlayers{
		ID:      int64(t.ID),
		Name:    t.Name,
		Players: players,
	}
}

// TeamList is a cached list response tagged with where the data came from
type TeamList struct {
	Data   []Team       `json:"data"`
	Source cache.Source `json:"source"`
}

// TeamListFromModel converts a team list plus its source tag
func TeamListFromModel(teams []*model.Team, source cache.Source) TeamList {
	data := make([]Team, len(teams))
	for i, t := range teams {
		data[i] = TeamFromModel(t)
	}
	return TeamList{Data: data, Source: source}
}

// PlayerList is a cached list response tagged with where the data came from
type PlayerList struct {
	Data   []Player     `json:"data"`
	Source cache.Source `json:"source"`
}

// PlayerListFromModel converts a player list plus its source tag
func PlayerListFromModel(players []*model.Player, source cache.Source) PlayerList {
	data := make([]Player, len(players))
	for i, p := range players {
		data[i] = PlayerFromModel(p)
	}
	return PlayerList{Data: data, Source: source}
}

// TeamWithPlayersList is the aggregate list response
type TeamWithPlayersList struct {
	Data   []TeamWithPlayers `json:"data"`
	Source cache.Source      `json:"source"`
}

// TeamWithPlayersListFromModel converts the aggregate list plus its source tag
func TeamWithPlayersListFromModel(teams []*model.TeamWithPlayers, source cache.Source) TeamWithPlayersList {
	data := make([]TeamWithPlayers, len(teams))
	for i, t := range teams {
		data[i] = TeamWithPlayersFromModel(t)
	}
	return TeamWithPlayersList{Data: data, Source: source}
}
