package handler

import (
	"encoding/json"
	"net/http"

	"github.com/cmerin0/PlayersSimpleApp/internal/api/apierr"
	"github.com/cmerin0/PlayersSimpleApp/internal/api/request"
	"github.com/cmerin0/PlayersSimpleApp/internal/api/response"
	"github.com/cmerin0/PlayersSimpleApp/internal/model"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/player"
)

// PlayerHandler handles player endpoints
type PlayerHandler struct {
	playerService *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerService *player.Service) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// List handles GET /players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, source, err := h.playerService.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerListFromModel(players, source))
}

// Create handles POST /players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" || req.TeamID == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Player name and team are required"))
		return
	}

	created, err := h.playerService.Create(r.Context(), req.Name, model.TeamID(*req.TeamID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(created))
}

// Get handles GET /players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	found, err := h.playerService.Get(r.Context(), model.PlayerID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(found))
}

// Update handles PUT /players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" || req.TeamID == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Player name and team are required"))
		return
	}

	updated, err := h.playerService.Update(r.Context(), model.PlayerID(id), req.Name, model.TeamID(*req.TeamID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(updated))
}

// Delete handles DELETE /players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.playerService.Delete(r.Context(), model.PlayerID(id)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageResponse{Message: "Player deleted successfully"})
}
