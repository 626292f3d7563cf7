package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cmerin0/PlayersSimpleApp/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	user, err := s.storage.CreateUser(s.ctx, "alice", "hash123", false)
	s.Require().NoError(err)
	s.Equal(model.UserID(1), user.ID)
	s.Equal("alice", user.Username)
	s.False(user.IsAdmin)
	s.False(user.CreatedAt.IsZero())

	got, err := s.storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(user.Username, got.Username)
}

func (s *StorageSuite) TestCreateUserDuplicateUsername() {
	_, err := s.storage.CreateUser(s.ctx, "alice", "hash1", false)
	s.Require().NoError(err)

	_, err = s.storage.CreateUser(s.ctx, "alice", "hash2", false)
	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *StorageSuite) TestGetUserByUsername() {
	created, err := s.storage.CreateUser(s.ctx, "bob", "hash", true)
	s.Require().NoError(err)

	got, err := s.storage.GetUserByUsername(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
	s.True(got.IsAdmin)

	_, err = s.storage.GetUserByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, 99)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestListUsersOrderedByID() {
	_, _ = s.storage.CreateUser(s.ctx, "alice", "h", false)
	_, _ = s.storage.CreateUser(s.ctx, "bob", "h", false)
	_, _ = s.storage.CreateUser(s.ctx, "carol", "h", true)

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 3)
	s.Equal("alice", users[0].Username)
	s.Equal("carol", users[2].Username)
}

// Team tests

func (s *StorageSuite) TestCreateAndGetTeam() {
	team, err := s.storage.CreateTeam(s.ctx, "Arsenal")
	s.Require().NoError(err)
	s.Equal(model.TeamID(1), team.ID)

	got, err := s.storage.GetTeam(s.ctx, team.ID)
	s.Require().NoError(err)
	s.Equal("Arsenal", got.Name)
}

func (s *StorageSuite) TestCreateTeamDuplicateName() {
	_, err := s.storage.CreateTeam(s.ctx, "Arsenal")
	s.Require().NoError(err)

	_, err = s.storage.CreateTeam(s.ctx, "Arsenal")
	s.ErrorIs(err, model.ErrTeamNameExists)
}

func (s *StorageSuite) TestUpdateTeam() {
	team, _ := s.storage.CreateTeam(s.ctx, "Arsenal")

	updated, err := s.storage.UpdateTeam(s.ctx, team.ID, "Chelsea")
	s.Require().NoError(err)
	s.Equal("Chelsea", updated.Name)

	got, _ := s.storage.GetTeam(s.ctx, team.ID)
	s.Equal("Chelsea", got.Name)
}

func (s *StorageSuite) TestUpdateTeamToTakenName() {
	_, _ = s.storage.CreateTeam(s.ctx, "Arsenal")
	team, _ := s.storage.CreateTeam(s.ctx, "Chelsea")

	_, err := s.storage.UpdateTeam(s.ctx, team.ID, "Arsenal")
	s.ErrorIs(err, model.ErrTeamNameExists)
}

func (s *StorageSuite) TestUpdateTeamKeepOwnName() {
	team, _ := s.storage.CreateTeam(s.ctx, "Arsenal")

	_, err := s.storage.UpdateTeam(s.ctx, team.ID, "Arsenal")
	s.NoError(err)
}

func (s *StorageSuite) TestUpdateTeamNotFound() {
	_, err := s.storage.UpdateTeam(s.ctx, 99, "Arsenal")
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *StorageSuite) TestDeleteTeamCascadesToPlayers() {
	team, _ := s.storage.CreateTeam(s.ctx, "Arsenal")
	other, _ := s.storage.CreateTeam(s.ctx, "Chelsea")
	p1, _ := s.storage.CreatePlayer(s.ctx, "Saka", team.ID)
	p2, _ := s.storage.CreatePlayer(s.ctx, "Palmer", other.ID)

	err := s.storage.DeleteTeam(s.ctx, team.ID)
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, p1.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	// Players of other teams are untouched
	_, err = s.storage.GetPlayer(s.ctx, p2.ID)
	s.NoError(err)
}

func (s *StorageSuite) TestDeleteTeamNotFound() {
	err := s.storage.DeleteTeam(s.ctx, 99)
	s.ErrorIs(err, model.ErrTeamNotFound)
}

// Player tests

func (s *StorageSuite) TestCreatePlayerDenormalizesTeamName() {
	team, _ := s.storage.CreateTeam(s.ctx, "Arsenal")

	player, err := s.storage.CreatePlayer(s.ctx, "Saka", team.ID)
	s.Require().NoError(err)
	s.Equal("Arsenal", player.TeamName)
	s.Equal(team.ID, player.TeamID)
}

func (s *StorageSuite) TestCreatePlayerUnknownTeam() {
	_, err := s.storage.CreatePlayer(s.ctx, "Saka", 99)
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *StorageSuite) TestGetPlayerReflectsTeamRename() {
	team, _ := s.storage.CreateTeam(s.ctx, "Arsenal")
	player, _ := s.storage.CreatePlayer(s.ctx, "Saka", team.ID)

	_, _ = s.storage.UpdateTeam(s.ctx, team.ID, "Chelsea")

	got, err := s.storage.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal("Chelsea", got.TeamName)
}

func (s *StorageSuite) TestUpdatePlayerTransfersTeam() {
	team, _ := s.storage.CreateTeam(s.ctx, "Arsenal")
	other, _ := s.storage.CreateTeam(s.ctx, "Chelsea")
	player, _ := s.storage.CreatePlayer(s.ctx, "Saka", team.ID)

	updated, err := s.storage.UpdatePlayer(s.ctx, player.ID, "Saka", other.ID)
	s.Require().NoError(err)
	s.Equal(other.ID, updated.TeamID)
	s.Equal("Chelsea", updated.TeamName)
}

func (s *StorageSuite) TestUpdatePlayerUnknownTeam() {
	team, _ := s.storage.CreateTeam(s.ctx, "Arsenal")
	player, _ := s.storage.CreatePlayer(s.ctx, "Saka", team.ID)

	_, err := s.storage.UpdatePlayer(s.ctx, player.ID, "Saka", 99)
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	team, _ := s.storage.CreateTeam(s.ctx, "Arsenal")
	player, _ := s.storage.CreatePlayer(s.ctx, "Saka", team.ID)

	err := s.storage.DeletePlayer(s.ctx, player.ID)
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, player.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	err = s.storage.DeletePlayer(s.ctx, player.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListTeamsWithPlayers() {
	arsenal, _ := s.storage.CreateTeam(s.ctx, "Arsenal")
	chelsea, _ := s.storage.CreateTeam(s.ctx, "Chelsea")
	_, _ = s.storage.CreatePlayer(s.ctx, "Saka", arsenal.ID)
	_, _ = s.storage.CreatePlayer(s.ctx, "Odegaard", arsenal.ID)

	result, err := s.storage.ListTeamsWithPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(result, 2)

	s.Equal("Arsenal", result[0].Name)
	s.Require().Len(result[0].Players, 2)
	s.Equal("Saka", result[0].Players[0].Name)
	s.Equal("Arsenal", result[0].Players[0].TeamName)

	// Empty team still appears, with an empty player list
	s.Equal(chelsea.ID, result[1].ID)
	s.Empty(result[1].Players)
}
