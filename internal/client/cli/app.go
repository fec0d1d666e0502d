package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/irccwatch/internal/client/client"
	"github.com/dmitrijs2005/irccwatch/internal/client/config"
	"github.com/dmitrijs2005/irccwatch/internal/client/guard"
	"github.com/dmitrijs2005/irccwatch/internal/client/repositories/cache"
	"github.com/dmitrijs2005/irccwatch/internal/client/services"
	"github.com/dmitrijs2005/irccwatch/internal/client/session"
	"github.com/dmitrijs2005/irccwatch/internal/client/tokenstore"
	"github.com/dmitrijs2005/irccwatch/internal/filex"
	"github.com/dmitrijs2005/irccwatch/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	session            *session.Session
	authService        services.AuthService
	credentialService  services.CredentialService
	applicationService services.ApplicationService
	adminService       services.AdminService

	nav    *navigator
	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the client from configuration. The local database is opened
// for the sqlite and cookie token stores; the memory store runs without one.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log := logging.New(c.LogLevel, os.Stderr)

	var (
		db     *sql.DB
		tokens tokenstore.Store
		repo   cache.Repository
		err    error
	)

	if c.TokenStore != config.StoreMemory {
		path, err := filex.EnsureParentDir(c.DBPath)
		if err != nil {
			return nil, err
		}
		db, err = client.InitDatabase(ctx, path)
		if err != nil {
			log.Error(ctx, "error initializing database", "path", path, "error", err)
			return nil, err
		}
		repo = cache.NewSQLiteRepository(db)
	}

	switch c.TokenStore {
	case config.StoreSQLite:
		tokens = tokenstore.NewSQLiteStore(db, c.Profile)
	case config.StoreCookie:
		tokens, err = tokenstore.NewCookieStore(c.BaseURL)
	case config.StoreMemory:
		tokens = tokenstore.NewMemoryStore()
	default:
		err = fmt.Errorf("unknown token store %q", c.TokenStore)
	}
	if err != nil {
		closeDB(db)
		return nil, err
	}

	h, err := client.NewHTTPClient(c.BaseURL, tokens,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
		client.WithAllowInsecure(c.AllowInsecure),
	)
	if err != nil {
		closeDB(db)
		return nil, err
	}
	api := client.NewRESTClient(h)

	configService := services.NewConfigService(api, repo, log)
	sess := session.New(tokens, api,
		session.WithConfigSource(configService),
		session.WithTokenTTL(c.TokenTTL),
		session.WithLogger(log),
	)
	h.SetUnauthorizedHandler(sess.HandleUnauthorized)

	a := &App{
		config:             c,
		log:                log,
		db:                 db,
		session:            sess,
		authService:        services.NewAuthService(api, sess),
		credentialService:  services.NewCredentialService(api),
		applicationService: services.NewApplicationService(api),
		adminService:       services.NewAdminService(api),
		reader:             bufio.NewReader(os.Stdin),
		out:                os.Stdout,
	}
	a.nav = newNavigator(sess, a.out)
	sess.SetRedirector(a.nav.redirect)

	return a, nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

// Run restores the session, starts the expiry watcher and blocks in the
// REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to irccwatch (type 'help' for commands)")

	a.session.Init(ctx)

	go a.session.WatchExpiry(ctx, a.config.ExpiryCheckInterval)

	if a.isLoggedIn() {
		_ = a.Dashboard(ctx)
	} else {
		a.nav.enter(guard.LoginPath)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	s := "anonymous"
	if snap.User != nil {
		s = fmt.Sprintf("%s %s", snap.User.Email, snap.User.Role)
	}
	if cur := a.nav.Current(); cur != "" {
		s = s + " " + cur
	}
	return fmt.Sprintf("(%s)", s)
}
