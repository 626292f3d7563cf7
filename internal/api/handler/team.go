package handler

import (
	"encoding/json"
	"net/http"

	"github.com/cmerin0/PlayersSimpleApp/internal/api/apierr"
	"github.com/cmerin0/PlayersSimpleApp/internal/api/request"
	"github.com/cmerin0/PlayersSimpleApp/internal/api/response"
	"github.com/cmerin0/PlayersSimpleApp/internal/model"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/team"
)

// TeamHandler handles team endpoints
type TeamHandler struct {
	teamService *team.Service
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService *team.Service) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// List handles GET /teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, source, err := h.teamService.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamListFromModel(teams, source))
}

// ListWithPlayers handles GET /teams/players
func (h *TeamHandler) ListWithPlayers(w http.ResponseWriter, r *http.Request) {
	teams, source, err := h.teamService.ListWithPlayers(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamWithPlayersListFromModel(teams, source))
}

// Create handles POST /teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("The team name is required"))
		return
	}

	created, err := h.teamService.Create(r.Context(), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TeamFromModel(created))
}

// Get handles GET /teams/{id}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	found, err := h.teamService.Get(r.Context(), model.TeamID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamFromModel(found))
}

// Update handles PUT /teams/{id}
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.UpdateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("The team name is required"))
		return
	}

	updated, err := h.teamService.Update(r.Context(), model.TeamID(id), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamFromModel(updated))
}

// Delete handles DELETE /teams/{id}
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.teamService.Delete(r.Context(), model.TeamID(id)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageResponse{Message: "Team deleted successfully"})
}
