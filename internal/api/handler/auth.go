package handler

import (
	"encoding/json"
	"net/http"

	"github.com/cmerin0/PlayersSimpleApp/internal/api/apierr"
	"github.com/cmerin0/PlayersSimpleApp/internal/api/middleware"
	"github.com/cmerin0/PlayersSimpleApp/internal/api/request"
	"github.com/cmerin0/PlayersSimpleApp/internal/api/response"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/auth"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/token"
)

// AuthHandler handles registration, login, logout, and token refresh
type AuthHandler struct {
	authService *auth.Service
	tokenCfg    token.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, tokenCfg token.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokenCfg:    tokenCfg,
	}
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" || req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Username and password are required"))
		return
	}

	if _, err := h.authService.Register(r.Context(), req.Username, req.Password); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MessageResponse{Message: "User registered successfully"})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	_, pair, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.setTokenCookie(w, middleware.AccessTokenCookie, pair.Access, int(h.tokenCfg.AccessTTL.Seconds()))
	h.setTokenCookie(w, middleware.RefreshTokenCookie, pair.Refresh, int(h.tokenCfg.RefreshTTL.Seconds()))

	response.JSON(w, http.StatusOK, response.LoginResponse{
		Message:      "Login successful",
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
	})
}

// Logout handles POST /logout. Tokens are stateless, so logout is limited
// to clearing the cookies; an already-issued token stays valid until its
// natural expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.clearTokenCookie(w, middleware.AccessTokenCookie)
	h.clearTokenCookie(w, middleware.RefreshTokenCookie)

	response.JSON(w, http.StatusOK, response.MessageResponse{Message: "Logged out successfully"})
}

// Refresh handles POST /refresh. Requires a valid refresh-kind cookie and
// mints a new access token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.RefreshTokenCookie)
	if err != nil {
		apierr.WriteError(w, apierr.NewUnauthorizedError())
		return
	}

	access, err := h.authService.Refresh(cookie.Value)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.setTokenCookie(w, middleware.AccessTokenCookie, access, int(h.tokenCfg.AccessTTL.Seconds()))

	response.JSON(w, http.StatusOK, response.RefreshResponse{
		Message:     "Token refreshed successfully",
		AccessToken: access,
	})
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearTokenCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
