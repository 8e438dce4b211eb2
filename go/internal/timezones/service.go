package timezones

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/timesync/go/internal/api"
	"github.com/mcdev12/timesync/go/internal/auth"
)

// Service exposes the timezone CRUD endpoints.
type Service struct {
	app *App
}

// NewService creates a new timezones HTTP service.
func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the timezone endpoints on mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/timezones", auth.RequireUser(s.handleList))
	mux.HandleFunc("POST /api/timezones", auth.RequireUser(s.handleCreate))
	mux.HandleFunc("DELETE /api/timezones/{id}", auth.RequireUser(s.handleDelete))
	mux.HandleFunc("PATCH /api/timezones/{id}/primary", auth.RequireUser(s.handleSetPrimary))
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request, userID int) {
	result, err := s.app.ListByUser(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to list timezones")
		api.WriteError(w, http.StatusInternalServerError, "failed to fetch timezones")
		return
	}
	api.WriteJSON(w, http.StatusOK, result)
}

func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request, userID int) {
	var req CreateTimezoneRequest
	if !api.DecodeBody(w, r, &req) {
		return
	}
	req.UserID = userID

	if req.Name == "" || req.Timezone == "" {
		api.WriteError(w, http.StatusBadRequest, "name and timezone are required")
		return
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		api.WriteError(w, http.StatusBadRequest, "unknown timezone")
		return
	}

	tz, err := s.app.Create(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to create timezone")
		api.WriteError(w, http.StatusInternalServerError, "failed to create timezone")
		return
	}
	api.WriteJSON(w, http.StatusOK, tz)
}

func (s *Service) handleDelete(w http.ResponseWriter, r *http.Request, userID int) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid timezone id")
		return
	}

	if err := s.app.Delete(r.Context(), id, userID); err != nil {
		log.Error().Err(err).Int("user_id", userID).Int("timezone_id", id).Msg("failed to delete timezone")
		api.WriteError(w, http.StatusInternalServerError, "failed to delete timezone")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Service) handleSetPrimary(w http.ResponseWriter, r *http.Request, userID int) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid timezone id")
		return
	}

	if err := s.app.SetPrimary(r.Context(), id, userID); err != nil {
		log.Error().Err(err).Int("user_id", userID).Int("timezone_id", id).Msg("failed to set primary timezone")
		api.WriteError(w, http.StatusInternalServerError, "failed to set primary timezone")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
