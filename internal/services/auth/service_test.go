package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/cmerin0/PlayersSimpleApp/internal/dependencies/mocks"
	"github.com/cmerin0/PlayersSimpleApp/internal/model"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/token"
	"github.com/cmerin0/PlayersSimpleApp/internal/storage/memory"
)

type AuthSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	tokens  *token.Service
	service *Service
	ctx     context.Context
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.tokens = token.New(token.Config{
		Secret:     "test-secret",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 720 * time.Hour,
	}, s.clock)
	s.service = New(s.storage, s.tokens)
	s.ctx = context.Background()
}

func (s *AuthSuite) TestRegisterHashesPassword() {
	user, err := s.service.Register(s.ctx, "alice", "secret123")
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
	s.False(user.IsAdmin)
	s.NotEqual("secret123", user.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
}

func (s *AuthSuite) TestRegisterDuplicateUsername() {
	_, err := s.service.Register(s.ctx, "alice", "secret123")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "alice", "other456")
	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *AuthSuite) TestLoginIssuesTokenPair() {
	registered, err := s.service.Register(s.ctx, "alice", "secret123")
	s.Require().NoError(err)

	user, pair, err := s.service.Login(s.ctx, "alice", "secret123")
	s.Require().NoError(err)
	s.Equal(registered.ID, user.ID)
	s.Require().NotNil(pair)
	s.NotEmpty(pair.Access)
	s.NotEmpty(pair.Refresh)
	s.NotEqual(pair.Access, pair.Refresh)

	userID, err := s.service.Authenticate(pair.Access)
	s.Require().NoError(err)
	s.Equal(registered.ID, userID)
}

func (s *AuthSuite) TestLoginWrongPassword() {
	_, _ = s.service.Register(s.ctx, "alice", "secret123")

	_, _, err := s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthSuite) TestLoginUnknownUser() {
	_, _, err := s.service.Login(s.ctx, "nobody", "secret123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthSuite) TestRefreshMintsNewAccessToken() {
	registered, _ := s.service.Register(s.ctx, "alice", "secret123")
	_, pair, err := s.service.Login(s.ctx, "alice", "secret123")
	s.Require().NoError(err)

	// Past the access TTL but well within the refresh TTL
	s.clock.Advance(time.Hour)

	_, err = s.service.Authenticate(pair.Access)
	s.ErrorIs(err, token.ErrExpiredToken)

	access, err := s.service.Refresh(pair.Refresh)
	s.Require().NoError(err)

	userID, err := s.service.Authenticate(access)
	s.Require().NoError(err)
	s.Equal(registered.ID, userID)
}

func (s *AuthSuite) TestRefreshRejectsAccessToken() {
	_, pair, _ := s.loginAs("alice")

	_, err := s.service.Refresh(pair.Access)
	s.ErrorIs(err, token.ErrWrongKind)
}

func (s *AuthSuite) TestAuthenticateRejectsRefreshToken() {
	_, pair, _ := s.loginAs("alice")

	_, err := s.service.Authenticate(pair.Refresh)
	s.ErrorIs(err, token.ErrWrongKind)
}

func (s *AuthSuite) TestAuthorizeAdmin() {
	admin, err := s.storage.CreateUser(s.ctx, "root", "hash", true)
	s.Require().NoError(err)

	got, err := s.service.AuthorizeAdmin(s.ctx, admin.ID)
	s.Require().NoError(err)
	s.Equal(admin.ID, got.ID)
}

func (s *AuthSuite) TestAuthorizeAdminRejectsNonAdmin() {
	user, _ := s.service.Register(s.ctx, "alice", "secret123")

	_, err := s.service.AuthorizeAdmin(s.ctx, user.ID)
	s.ErrorIs(err, ErrForbidden)
}

func (s *AuthSuite) TestAuthorizeAdminRejectsDeletedUser() {
	// Token holder whose account no longer resolves is forbidden, not a crash
	_, err := s.service.AuthorizeAdmin(s.ctx, 99)
	s.ErrorIs(err, ErrForbidden)
}

func (s *AuthSuite) TestListUsers() {
	_, _ = s.service.Register(s.ctx, "alice", "secret123")
	_, _ = s.service.Register(s.ctx, "bob", "secret456")

	users, err := s.service.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 2)
}

func (s *AuthSuite) loginAs(username string) (*model.User, *TokenPair, error) {
	if _, err := s.service.Register(s.ctx, username, "secret123"); err != nil {
		return nil, nil, err
	}
	return s.service.Login(s.ctx, username, "secret123")
}
