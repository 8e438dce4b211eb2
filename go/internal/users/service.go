package users

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/timesync/go/internal/api"
)

// Service exposes the authentication endpoints. Token verification is
// delegated to the external identity provider; the service records the
// asserted identity and hands back the stored user.
type Service struct {
	app *App
}

// NewService creates a new users HTTP service.
func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the auth endpoints on mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/guest", s.handleGuest)
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req CreateOrUpdateUserRequest
	if !api.DecodeBody(w, r, &req) {
		return
	}
	if req.ExternalUID == "" || req.Email == "" {
		api.WriteError(w, http.StatusBadRequest, "externalUid and email are required")
		return
	}

	user, err := s.app.CreateOrUpdateUser(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("login failed")
		api.WriteError(w, http.StatusInternalServerError, "login failed")
		return
	}
	api.WriteJSON(w, http.StatusOK, user)
}

// handleGuest creates a throwaway user for clients without a configured
// identity provider.
func (s *Service) handleGuest(w http.ResponseWriter, r *http.Request) {
	displayName := "Guest User"
	user, err := s.app.CreateOrUpdateUser(r.Context(), CreateOrUpdateUserRequest{
		ExternalUID: fmt.Sprintf("guest_%d", time.Now().UnixMilli()),
		Email:       "guest@example.com",
		DisplayName: &displayName,
	})
	if err != nil {
		log.Error().Err(err).Msg("guest login failed")
		api.WriteError(w, http.StatusInternalServerError, "guest login failed")
		return
	}
	api.WriteJSON(w, http.StatusOK, user)
}
