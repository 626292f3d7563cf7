package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cmerin0/PlayersSimpleApp/internal/dependencies/clock"
	"github.com/cmerin0/PlayersSimpleApp/internal/model"
)

// Kind distinguishes short-lived access tokens from the longer-lived refresh
// tokens used only to mint new access tokens.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrWrongKind    = errors.New("wrong token kind")
)

// Claims are the JWT claims carried by every issued token
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
	Kind   Kind  `json:"kind"`
}

// Config holds token signing settings
type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// DefaultConfig returns default token configuration
func DefaultConfig() Config {
	return Config{
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 30 * 24 * time.Hour,
	}
}

// Service issues and validates self-contained signed tokens. Validation
// requires no store lookup, trading instant revocation for horizontal
// scalability: there is no server-side revocation list, and logout is
// client-side cookie clearing only.
type Service struct {
	secret []byte
	cfg    Config
	clock  clock.Clock
}

// New creates a new token service
func New(cfg Config, clk clock.Clock) *Service {
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = DefaultConfig().AccessTTL
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = DefaultConfig().RefreshTTL
	}
	return &Service{
		secret: []byte(cfg.Secret),
		cfg:    cfg,
		clock:  clk,
	}
}

// Issue produces a signed token embedding the user id, the kind, and an
// expiry (short for access, longer for refresh)
func (s *Service) Issue(userID model.UserID, kind Kind) (string, error) {
	ttl := s.cfg.AccessTTL
	if kind == KindRefresh {
		ttl = s.cfg.RefreshTTL
	}

	now := s.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: int64(userID),
		Kind:   kind,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks the signature, expiry, and kind of a token and returns the
// embedded user id. An access token presented where a refresh token is
// required (or vice versa) fails with ErrWrongKind.
func (s *Service) Validate(tokenString string, required Kind) (model.UserID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, ErrInvalidToken
	}

	if !token.Valid {
		return 0, ErrInvalidToken
	}
	if claims.Kind != required {
		return 0, ErrWrongKind
	}

	return model.UserID(claims.UserID), nil
}
