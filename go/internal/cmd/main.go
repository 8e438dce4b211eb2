package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/timesync/go/internal/teamsync/relay"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg.Log.Level)

	ctx := context.Background()

	var services *Services
	if cfg.Storage.Driver == "postgres" {
		pool, err := setupDatabase(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		services, err = setupServices(cfg, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up services")
		}
	} else {
		services, err = setupServices(cfg, nil)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up services")
		}
	}

	if cfg.Relay.Enabled {
		relayCfg := relay.DefaultConfig()
		if cfg.Relay.URL != "" {
			relayCfg.URL = cfg.Relay.URL
		}
		relayCfg.SubjectPrefix = cfg.Relay.SubjectPrefix
		relayCfg.ReconnectWait = time.Duration(cfg.Relay.ReconnectWaitSeconds) * time.Second

		r, err := relay.New(services.Router, relayCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start relay")
		}
		defer r.Close()
		services.Router.SetForwarder(r)
	}

	server := setupServer(cfg, services)

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}
