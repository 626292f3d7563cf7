package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/cmerin0/PlayersSimpleApp/internal/model"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/token"
	"github.com/cmerin0/PlayersSimpleApp/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)

// TokenPair is the access + refresh credential pair issued at login
type TokenPair struct {
	Access  string
	Refresh string
}

// Service handles registration, login, token refresh, and admin gating
type Service struct {
	storage storage.Storage
	tokens  *token.Service
}

// New creates a new auth service
func New(store storage.Storage, tokens *token.Service) *Service {
	return &Service{
		storage: store,
		tokens:  tokens,
	}
}

// Register creates a user account with a bcrypt-hashed password.
// Accounts are never admins at registration; the flag is set out of band.
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.storage.CreateUser(ctx, username, string(hash), false)
}

// Login authenticates a user and issues an access + refresh token pair.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, *TokenPair, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *Service) issuePair(userID model.UserID) (*TokenPair, error) {
	access, err := s.tokens.Issue(userID, token.KindAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(userID, token.KindRefresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh validates a refresh-kind token and mints a new access token.
// Access tokens cannot mint new tokens; that fails with ErrWrongKind.
func (s *Service) Refresh(refreshToken string) (string, error) {
	userID, err := s.tokens.Validate(refreshToken, token.KindRefresh)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(userID, token.KindAccess)
}

// Authenticate resolves an access-kind token to the caller's user id
func (s *Service) Authenticate(accessToken string) (model.UserID, error) {
	return s.tokens.Validate(accessToken, token.KindAccess)
}

// AuthorizeAdmin checks that the user exists and carries the admin flag.
// A user deleted after token issuance is ErrForbidden, not a crash.
func (s *Service) AuthorizeAdmin(ctx context.Context, userID model.UserID) (*model.User, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, ErrForbidden
	}
	if !user.IsAdmin {
		return nil, ErrForbidden
	}
	return user, nil
}

// ListUsers returns all user accounts; callers gate this behind AuthorizeAdmin
func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.storage.ListUsers(ctx)
}
