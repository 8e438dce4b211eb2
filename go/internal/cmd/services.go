package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/timesync/go/internal/clock"
	"github.com/mcdev12/timesync/go/internal/teams"
	"github.com/mcdev12/timesync/go/internal/teamsync"
	"github.com/mcdev12/timesync/go/internal/teamsync/gateway"
	"github.com/mcdev12/timesync/go/internal/timezones"
	"github.com/mcdev12/timesync/go/internal/users"
)

type Services struct {
	Users     *users.Service
	Timezones *timezones.Service
	Teams     *teams.Service

	Registry *teamsync.Registry
	Router   *teamsync.Router
	Gateway  *gateway.Gateway

	Clock *clock.Virtual
}

// setupServices wires the dependency chain: repository layer, app layer,
// service layer, then the sync core. pool is nil for the memory driver.
func setupServices(cfg *Config, pool *pgxpool.Pool) (*Services, error) {
	var (
		userRepo users.Repository
		tzRepo   timezones.Repository
		teamRepo teams.Repository
	)

	switch cfg.Storage.Driver {
	case "memory":
		userRepo = users.NewMemRepository()
		tzRepo = timezones.NewMemRepository()
		teamRepo = teams.NewMemRepository()
	case "postgres":
		userRepo = users.NewPostgresRepository(pool)
		tzRepo = timezones.NewPostgresRepository(pool)
		teamRepo = teams.NewPostgresRepository(pool)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	tzApp := timezones.NewApp(tzRepo)
	userApp := users.NewApp(userRepo, tzApp)
	teamApp := teams.NewApp(teamRepo, tzApp)

	registry := teamsync.NewRegistry()
	router := teamsync.NewRouter(registry)
	handler := teamsync.NewHandler(registry, router)

	return &Services{
		Users:     users.NewService(userApp),
		Timezones: timezones.NewService(tzApp),
		Teams:     teams.NewService(teamApp),
		Registry:  registry,
		Router:    router,
		Gateway:   gateway.New(registry, handler, gateway.DefaultConfig()),
		Clock:     clock.NewVirtual(clockwork.NewRealClock()),
	}, nil
}
