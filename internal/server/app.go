// Package server wires the development backend: in-memory repositories,
// domain services, seeded accounts and the REST server, with graceful
// shutdown on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/irccwatch/internal/cryptox"
	"github.com/dmitrijs2005/irccwatch/internal/logging"
	"github.com/dmitrijs2005/irccwatch/internal/server/applications"
	"github.com/dmitrijs2005/irccwatch/internal/server/config"
	"github.com/dmitrijs2005/irccwatch/internal/server/credentials"
	"github.com/dmitrijs2005/irccwatch/internal/server/rest"
	"github.com/dmitrijs2005/irccwatch/internal/server/shared/db"
	"github.com/dmitrijs2005/irccwatch/internal/server/users"
	"github.com/dmitrijs2005/irccwatch/internal/shared"
)

// sealerSalt is fixed so sealed passwords stay readable for a given secret.
var sealerSalt = []byte("irccwatch-sealer")

const (
	demoEmail    = "demo@example.com"
	demoPassword = "demo123"
)

type App struct {
	config             *config.Config
	logger             logging.Logger
	userService        *users.Service
	credentialService  *credentials.Service
	applicationService *applications.Service
}

func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger := logging.New(c.LogLevel, os.Stdout)

	secret := c.SecretKey
	if secret == "" {
		s, err := shared.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("generate secret: %w", err)
		}
		secret = s
		logger.Warn(context.Background(), "no secret key configured, tokens will not survive a restart")
	}

	rm := db.NewInMemoryRepositoryManager()

	as := applications.NewService(rm.Applications())
	cs := credentials.NewService(rm.Credentials(), cryptox.NewSealer([]byte(secret), sealerSalt), as)
	us := users.NewService(rm.Users(), []byte(secret), c.TokenLifetime)

	return &App{
		config:             c,
		logger:             logger,
		userService:        us,
		credentialService:  cs,
		applicationService: as,
	}, nil
}

// Seed creates the administrator and, when enabled, a demo user whose
// application already has some history.
func (app *App) Seed(ctx context.Context) error {
	if _, err := app.userService.Seed(ctx, app.config.AdminEmail, app.config.AdminPassword, users.RoleAdmin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	app.logger.Info(ctx, "Seeded admin", "email", app.config.AdminEmail)

	if !app.config.SeedDemo {
		return nil
	}

	demo, err := app.userService.Seed(ctx, demoEmail, demoPassword, users.RoleUser)
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}

	owner := credentials.Owner{UserID: demo.ID, Email: demo.Email}
	existing, err := app.credentialService.Mine(ctx, owner)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	if _, err := app.credentialService.Create(ctx, owner, credentials.Input{
		IRCCUsername:      "demo-portal-user",
		IRCCPassword:      demoPassword,
		NotificationEmail: demoEmail,
		IsActive:          true,
		ApplicationType:   credentials.TypeCitizen,
	}); err != nil {
		return fmt.Errorf("seed demo credential: %w", err)
	}

	for range 2 {
		if _, err := app.credentialService.CheckAll(ctx); err != nil {
			return fmt.Errorf("seed demo history: %w", err)
		}
	}

	app.logger.Info(ctx, "Seeded demo user", "email", demoEmail)
	return nil
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

func (app *App) startRESTServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewRESTServer(app.config.ListenAddr, app.logger, app.userService, app.credentialService, app.applicationService,
		rest.PublicConfig{
			GoogleClientID:    app.config.GoogleClientID,
			GoogleAnalyticsID: app.config.GoogleAnalyticsID,
		})

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run seeds the stores and serves until ctx is cancelled or a signal
// arrives.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.Seed(ctx); err != nil {
		return err
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startRESTServer(ctx, cancelFunc)
	}()

	wg.Wait()

	return nil
}
