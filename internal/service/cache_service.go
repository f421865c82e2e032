package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
)

// Keys for the cached admin session list. Imports and evaluations drop every
// key under the pattern.
const (
	AdminSessionsCacheKey     = "admin:sessions:recent"
	AdminSessionsCachePattern = "admin:sessions:*"
)

const defaultCacheNamespace = "trailclass:"

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheConfig controls the read-through cache in front of session listings.
type CacheConfig struct {
	Enabled   bool
	TTL       time.Duration
	Namespace string
}

// CacheService namespaces keys, applies the TTL and records cache metrics.
// When disabled every read misses and every write is a no-op.
type CacheService struct {
	store   cacheStore
	metrics *MetricsService
	cfg     CacheConfig
	logger  *zap.Logger
}

// NewCacheService constructs a cache service.
func NewCacheService(store cacheStore, metrics *MetricsService, cfg CacheConfig, logger *zap.Logger) *CacheService {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.Namespace == "" {
		cfg.Namespace = defaultCacheNamespace
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{store: store, metrics: metrics, cfg: cfg, logger: logger}
}

// Enabled reports whether reads and writes reach the store.
func (s *CacheService) Enabled() bool {
	return s != nil && s.cfg.Enabled && s.store != nil
}

// Get decodes the cached value into dest and reports a hit. A miss is not an
// error.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	start := time.Now()
	err := s.store.Get(ctx, s.cfg.Namespace+key, dest)
	s.observeRead(err == nil, time.Since(start))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, appErrors.ErrCacheMiss):
		return false, nil
	default:
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
}

// Set stores value under key. ttl <= 0 uses the configured TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = s.cfg.TTL
	}
	start := time.Now()
	err := s.store.Set(ctx, s.cfg.Namespace+key, value, ttl)
	if s.metrics != nil {
		s.metrics.ObserveCacheWrite(time.Since(start))
	}
	if err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Invalidate drops every key matching pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.store.DeleteByPattern(ctx, s.cfg.Namespace+pattern); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}
	return nil
}

func (s *CacheService) observeRead(hit bool, d time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, d)
	}
}
