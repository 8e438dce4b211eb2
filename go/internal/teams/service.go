package teams

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/timesync/go/internal/api"
	"github.com/mcdev12/timesync/go/internal/auth"
)

// Service exposes the team endpoints. The share lookup is public by design:
// possession of the share token is the authorization.
type Service struct {
	app *App
}

// NewService creates a new teams HTTP service.
func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the team endpoints on mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/teams", auth.RequireUser(s.handleCreate))
	mux.HandleFunc("GET /api/teams/shared/{shareId}", s.handleShared)
}

func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request, userID int) {
	var req struct {
		Name     string         `json:"name"`
		Settings map[string]any `json:"settings"`
	}
	if !api.DecodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		api.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	team, err := s.app.CreateTeam(r.Context(), userID, req.Name, req.Settings)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to create team")
		api.WriteError(w, http.StatusInternalServerError, "failed to create team")
		return
	}
	api.WriteJSON(w, http.StatusOK, team)
}

func (s *Service) handleShared(w http.ResponseWriter, r *http.Request) {
	shareID := r.PathValue("shareId")

	team, err := s.app.GetSharedTeam(r.Context(), shareID)
	if errors.Is(err, ErrNotFound) {
		api.WriteError(w, http.StatusNotFound, "team not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("share_id", shareID).Msg("failed to fetch shared team")
		api.WriteError(w, http.StatusInternalServerError, "failed to fetch team")
		return
	}
	api.WriteJSON(w, http.StatusOK, team)
}
