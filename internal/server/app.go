// Package server wires the application together: configuration, logging,
// the Postgres-backed stores, the auth and patient services, and the HTTP
// server, with graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/medvault/medvault/internal/logging"
	"github.com/medvault/medvault/internal/server/auth"
	"github.com/medvault/medvault/internal/server/config"
	gh "github.com/medvault/medvault/internal/server/http"
	"github.com/medvault/medvault/internal/server/patients"
	"github.com/medvault/medvault/internal/server/shared/db"
	"github.com/medvault/medvault/internal/server/users"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	repos          db.RepositoryManager
	userService    *users.Service
	patientService *patients.Service
	issuer         *auth.TokenIssuer
}

// NewApp validates the configuration and builds the full service graph.
// A missing signing secret is fatal here, before the server starts
// listening.
func NewApp(c *config.Config) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, err
	}

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	issuer, err := auth.NewTokenIssuer(c.SecretKey, c.Issuer, c.Audience, c.TokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token issuer init error: %w", err)
	}

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := users.NewService(rm.Users(), auth.NewBcryptHasher(c.BcryptCost), issuer)
	ps := patients.NewService(rm.Patients())

	return &App{
		config:         c,
		logger:         logger,
		repos:          rm,
		userService:    us,
		patientService: ps,
		issuer:         issuer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gh.NewHTTPServer(app.config.EndpointAddr, app.logger, app.userService, app.patientService, app.issuer)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repos.RunMigrations(ctx); err != nil {
		app.logger.Error(ctx, "migration error", "error", err.Error())
		return
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
