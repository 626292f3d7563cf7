package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.store = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StoreSuite) TestPutAndGet() {
	snapshot := []byte(`[{"id":1,"name":"Arsenal"}]`)

	err := s.store.Put(s.ctx, KeyAllTeams, snapshot, s.store.TTL(KeyAllTeams))
	s.Require().NoError(err)

	got, err := s.store.Get(s.ctx, KeyAllTeams)
	s.Require().NoError(err)
	s.Equal(snapshot, got)
}

func (s *StoreSuite) TestGetMissingKey() {
	_, err := s.store.Get(s.ctx, KeyAllTeams)
	s.ErrorIs(err, ErrMiss)
}

func (s *StoreSuite) TestKeysAreNamespaced() {
	err := s.store.Put(s.ctx, KeyAllPlayers, []byte(`[]`), time.Minute)
	s.Require().NoError(err)

	s.True(s.mini.Exists("soccer:q:all_players"))
	s.False(s.mini.Exists("all_players"))
}

func (s *StoreSuite) TestTTLExpiry() {
	err := s.store.Put(s.ctx, KeyAllTeams, []byte(`[]`), 15*time.Second)
	s.Require().NoError(err)

	s.mini.FastForward(14 * time.Second)
	_, err = s.store.Get(s.ctx, KeyAllTeams)
	s.NoError(err)

	s.mini.FastForward(2 * time.Second)
	_, err = s.store.Get(s.ctx, KeyAllTeams)
	s.ErrorIs(err, ErrMiss)
}

func (s *StoreSuite) TestPutResetsTTL() {
	_ = s.store.Put(s.ctx, KeyAllTeams, []byte(`old`), 15*time.Second)
	s.mini.FastForward(10 * time.Second)

	_ = s.store.Put(s.ctx, KeyAllTeams, []byte(`new`), 15*time.Second)
	s.mini.FastForward(10 * time.Second)

	got, err := s.store.Get(s.ctx, KeyAllTeams)
	s.Require().NoError(err)
	s.Equal([]byte(`new`), got)
}

func (s *StoreSuite) TestInvalidate() {
	_ = s.store.Put(s.ctx, KeyAllTeams, []byte(`[]`), time.Minute)
	_ = s.store.Put(s.ctx, KeyTeamsWithPlayers, []byte(`[]`), time.Minute)
	_ = s.store.Put(s.ctx, KeyAllPlayers, []byte(`[]`), time.Minute)

	err := s.store.Invalidate(s.ctx, KeyAllTeams, KeyTeamsWithPlayers)
	s.Require().NoError(err)

	_, err = s.store.Get(s.ctx, KeyAllTeams)
	s.ErrorIs(err, ErrMiss)
	_, err = s.store.Get(s.ctx, KeyTeamsWithPlayers)
	s.ErrorIs(err, ErrMiss)

	// Untouched key survives
	_, err = s.store.Get(s.ctx, KeyAllPlayers)
	s.NoError(err)
}

func (s *StoreSuite) TestInvalidateMissingKeyIsNoop() {
	err := s.store.Invalidate(s.ctx, KeyAllTeams)
	s.NoError(err)
}

func (s *StoreSuite) TestInvalidateNoKeys() {
	err := s.store.Invalidate(s.ctx)
	s.NoError(err)
}

func (s *StoreSuite) TestUnavailableBackend() {
	s.mini.Close()

	_, err := s.store.Get(s.ctx, KeyAllTeams)
	s.ErrorIs(err, ErrUnavailable)

	err = s.store.Put(s.ctx, KeyAllTeams, []byte(`[]`), time.Minute)
	s.ErrorIs(err, ErrUnavailable)

	err = s.store.Invalidate(s.ctx, KeyAllTeams)
	s.ErrorIs(err, ErrUnavailable)
}

func (s *StoreSuite) TestConfiguredTTLs() {
	s.Equal(15*time.Second, s.store.TTL(KeyAllTeams))
	s.Equal(15*time.Second, s.store.TTL(KeyTeamsWithPlayers))
	s.Equal(60*time.Second, s.store.TTL(KeyAllPlayers))
	s.Equal(time.Duration(0), s.store.TTL("unknown"))
}
