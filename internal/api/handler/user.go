package handler

import (
	"net/http"

	"github.com/cmerin0/PlayersSimpleApp/internal/api/apierr"
	"github.com/cmerin0/PlayersSimpleApp/internal/api/response"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/auth"
)

// UserHandler handles user listing (admin only, enforced by middleware)
type UserHandler struct {
	authService *auth.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *auth.Service) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// List handles GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UsersFromModel(users))
}
