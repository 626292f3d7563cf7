package team

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/cmerin0/PlayersSimpleApp/internal/cache"
	"github.com/cmerin0/PlayersSimpleApp/internal/model"
	"github.com/cmerin0/PlayersSimpleApp/internal/storage/memory"
)

type TeamServiceSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *memory.Storage
	cache   *cache.Store
	service *Service
	ctx     context.Context
}

func TestTeamServiceSuite(t *testing.T) {
	suite.Run(t, new(TeamServiceSuite))
}

func (s *TeamServiceSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.cache = cache.NewWithClient(client, cache.DefaultConfig())

	s.storage = memory.New()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s.service = New(s.storage, s.cache, logger)
	s.ctx = context.Background()
}

func (s *TeamServiceSuite) TearDownTest() {
	_ = s.cache.Close()
	s.mini.Close()
}

func (s *TeamServiceSuite) TestListPopulatesCache() {
	_, err := s.service.Create(s.ctx, "Arsenal")
	s.Require().NoError(err)

	teams, source, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal(cache.SourceDatabase, source)
	s.Require().Len(teams, 1)

	teams, source, err = s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal(cache.SourceCache, source)
	s.Require().Len(teams, 1)
	s.Equal("Arsenal", teams[0].Name)
}

func (s *TeamServiceSuite) TestListAfterTTLExpiryHitsDatabase() {
	_, _ = s.service.Create(s.ctx, "Arsenal")

	_, source, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal(cache.SourceDatabase, source)

	s.mini.FastForward(16 * time.Second)

	_, source, err = s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal(cache.SourceDatabase, source)
}

func (s *TeamServiceSuite) TestCreateInvalidatesListSnapshots() {
	_, _ = s.service.Create(s.ctx, "Arsenal")
	_, _, _ = s.service.List(s.ctx)
	_, _, _ = s.service.ListWithPlayers(s.ctx)

	_, err := s.service.Create(s.ctx, "Chelsea")
	s.Require().NoError(err)

	teams, source, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal(cache.SourceDatabase, source)
	s.Len(teams, 2)

	_, source, err = s.service.ListWithPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(cache.SourceDatabase, source)
}

func (s *TeamServiceSuite) TestUpdateInvalidatesListSnapshots() {
	team, _ := s.service.Create(s.ctx, "Arsenal")
	_, _, _ = s.service.List(s.ctx)

	_, err := s.service.Update(s.ctx, team.ID, "Chelsea")
	s.Require().NoError(err)

	teams, source, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal(cache.SourceDatabase, source)
	s.Equal("Chelsea", teams[0].Name)
}

func (s *TeamServiceSuite) TestFailedMutationLeavesCacheIntact() {
	_, _ = s.service.Create(s.ctx, "Arsenal")
	_, _, _ = s.service.List(s.ctx)

	_, err := s.service.Create(s.ctx, "Arsenal")
	s.ErrorIs(err, model.ErrTeamNameExists)

	// The rejected write must not have dropped the snapshot
	_, source, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal(cache.SourceCache, source)
}

func (s *TeamServiceSuite) TestDeleteInvalidatesAndCascades() {
	team, _ := s.service.Create(s.ctx, "Arsenal")
	_, _ = s.storage.CreatePlayer(s.ctx, "Saka", team.ID)
	_, _, _ = s.service.ListWithPlayers(s.ctx)

	err := s.service.Delete(s.ctx, team.ID)
	s.Require().NoError(err)

	result, source, err := s.service.ListWithPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(cache.SourceDatabase, source)
	s.Empty(result)
}

func (s *TeamServiceSuite) TestDeleteNotFound() {
	err := s.service.Delete(s.ctx, 99)
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *TeamServiceSuite) TestGetBypassesCache() {
	team, _ := s.service.Create(s.ctx, "Arsenal")

	got, err := s.service.Get(s.ctx, team.ID)
	s.Require().NoError(err)
	s.Equal("Arsenal", got.Name)

	s.False(s.mini.Exists("soccer:q:all_teams"))
}

func (s *TeamServiceSuite) TestCorruptCacheEntryFallsThrough() {
	_, _ = s.service.Create(s.ctx, "Arsenal")
	s.Require().NoError(s.mini.Set("soccer:q:all_teams", "{not json"))

	teams, source, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal(cache.SourceDatabase, source)
	s.Len(teams, 1)
}

func (s *TeamServiceSuite) TestCacheOutageDegradesToDatabase() {
	_, _ = s.service.Create(s.ctx, "Arsenal")
	s.mini.Close()

	teams, source, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal(cache.SourceDatabase, source)
	s.Len(teams, 1)

	// Mutations still succeed when invalidation cannot reach the backend
	_, err = s.service.Create(s.ctx, "Chelsea")
	s.NoError(err)
}

func (s *TeamServiceSuite) TestListWithPlayersIncludesRosters() {
	team, _ := s.service.Create(s.ctx, "Arsenal")
	_, _ = s.storage.CreatePlayer(s.ctx, "Saka", team.ID)

	result, source, err := s.service.ListWithPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(cache.SourceDatabase, source)
	s.Require().Len(result, 1)
	s.Require().Len(result[0].Players, 1)
	s.Equal("Saka", result[0].Players[0].Name)

	// Cached round trip preserves the roster
	result, source, err = s.service.ListWithPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(cache.SourceCache, source)
	s.Require().Len(result, 1)
	s.Equal("Saka", result[0].Players[0].Name)
}
