package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mcdev12/timesync/go/internal/api"
	"github.com/mcdev12/timesync/go/internal/auth"
	"github.com/mcdev12/timesync/go/internal/clock"
)

func setupServer(cfg *Config, services *Services) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	services.Users.RegisterRoutes(mux)
	services.Timezones.RegisterRoutes(mux)
	services.Teams.RegisterRoutes(mux)

	mux.Handle("/ws", services.Gateway)
	mux.HandleFunc("GET /api/time", timeHandler(services))
	mux.HandleFunc("GET /health", healthHandler)
	mux.HandleFunc("GET /stats", statsHandler(services))

	handler := c.Handler(auth.Middleware(mux))

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statsHandler(services *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, connections := services.Registry.Stats()
		api.WriteJSON(w, http.StatusOK, map[string]int{
			"teams":       teams,
			"connections": connections,
		})
	}
}

// timeHandler reports the virtual clock, optionally converted into a
// requested IANA zone.
func timeHandler(services *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := services.Clock.Now()

		if zone := r.URL.Query().Get("timezone"); zone != "" {
			local, err := clock.In(now, zone)
			if err != nil {
				api.WriteError(w, http.StatusBadRequest, "unknown timezone")
				return
			}
			now = local
		}
		api.WriteJSON(w, http.StatusOK, map[string]string{"time": now.Format(time.RFC3339)})
	}
}
