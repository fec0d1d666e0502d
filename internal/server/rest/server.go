// Package rest serves the tracker's JSON API over HTTP.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/logging"
	"github.com/dmitrijs2005/irccwatch/internal/server/applications"
	"github.com/dmitrijs2005/irccwatch/internal/server/credentials"
	"github.com/dmitrijs2005/irccwatch/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

// PublicConfig is served unauthenticated at /api/config.
type PublicConfig struct {
	GoogleClientID    string `json:"googleClientId"`
	GoogleAnalyticsID string `json:"googleAnalyticsId"`
}

type RESTServer struct {
	address      string
	users        *users.Service
	credentials  *credentials.Service
	applications *applications.Service
	logger       logging.Logger
	public       PublicConfig
	metrics      *metrics

	mu        sync.Mutex
	lastCheck time.Time
	checked   int
}

func NewRESTServer(a string, l logging.Logger, us *users.Service, cs *credentials.Service, as *applications.Service, pc PublicConfig) *RESTServer {
	return &RESTServer{
		address:      a,
		logger:       l.With("module", "rest_server"),
		users:        us,
		credentials:  cs,
		applications: as,
		public:       pc,
		metrics:      newMetrics(),
	}
}

func (s *RESTServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting REST server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
