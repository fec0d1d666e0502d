package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/client/client"
	"github.com/dmitrijs2005/irccwatch/internal/client/models"
	"github.com/dmitrijs2005/irccwatch/internal/client/repositories/cache"
	"github.com/dmitrijs2005/irccwatch/internal/logging"
)

const publicConfigKey = "public_config"

// ConfigService fetches the public configuration and falls back to the
// last good copy, in memory or in the local cache, when the backend is
// unreachable.
type ConfigService struct {
	api   client.API
	cache cache.Repository
	log   logging.Logger
	now   func() time.Time

	mu     sync.Mutex
	cached *models.PublicConfig
}

// NewConfigService builds the service. repo may be nil for memory-only
// caching.
func NewConfigService(api client.API, repo cache.Repository, log logging.Logger) *ConfigService {
	if log == nil {
		log = logging.Nop()
	}
	return &ConfigService{api: api, cache: repo, log: log, now: time.Now}
}

func (s *ConfigService) PublicConfig(ctx context.Context) (*models.PublicConfig, error) {
	cfg, err := s.api.PublicConfig(ctx)
	if err == nil {
		s.remember(ctx, cfg)
		c := *cfg
		return &c, nil
	}

	if cached := s.fromCache(ctx); cached != nil {
		s.log.Warn(ctx, "using cached public config", "error", err)
		return cached, nil
	}
	return nil, err
}

func (s *ConfigService) remember(ctx context.Context, cfg *models.PublicConfig) {
	c := *cfg
	s.mu.Lock()
	s.cached = &c
	s.mu.Unlock()

	if s.cache == nil {
		return
	}
	b, err := json.Marshal(c)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, publicConfigKey, b, s.now()); err != nil {
		s.log.Warn(ctx, "failed to cache public config", "error", err)
	}
}

func (s *ConfigService) fromCache(ctx context.Context) *models.PublicConfig {
	s.mu.Lock()
	if s.cached != nil {
		c := *s.cached
		s.mu.Unlock()
		return &c
	}
	s.mu.Unlock()

	if s.cache == nil {
		return nil
	}
	entry, err := s.cache.Get(ctx, publicConfigKey)
	if err != nil || entry == nil {
		return nil
	}
	var c models.PublicConfig
	if err := json.Unmarshal(entry.Value, &c); err != nil {
		return nil
	}
	return &c
}
