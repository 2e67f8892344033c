package labelscan

import (
	"context"
	"log/slog"
	"time"
)

// Scanner turns label photos into Results. It never fails: any upstream
// problem yields an empty Result so the buyer falls back to manual entry.
type Scanner struct {
	vision  Vision
	pace    *pacer
	cache   *resultCache
	logger  *slog.Logger
	timeout time.Duration
}

// NewScanner wraps vision with cfg's timeout, rate limit and cache.
func NewScanner(vision Vision, cfg Config, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Scanner{
		vision:  vision,
		pace:    newPacer(cfg.RateLimit),
		cache:   newResultCache(cfg.CacheTTL),
		logger:  logger,
		timeout: timeout,
	}
}

// New builds a Scanner for the provider named in cfg.
func New(cfg Config, logger *slog.Logger) (*Scanner, error) {
	vision, err := NewVision(cfg)
	if err != nil {
		return nil, err
	}
	return NewScanner(vision, cfg, logger), nil
}

// Scan extracts label fields from a base64 JPEG.
func (s *Scanner) Scan(ctx context.Context, imageBase64 string) Result {
	key := imageKey(imageBase64)
	if cached, ok := s.cache.get(key); ok {
		s.logger.Debug("Label scan cache hit", "image", key[:12])
		return cached
	}

	// The timeout covers the wait for a scan slot as well as the call.
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.pace.await(ctx); err != nil {
		s.logger.Warn("Label scan skipped", "error", err)
		return Result{}
	}

	content, err := s.vision.Extract(ctx, imageBase64)
	if err != nil {
		s.logger.Error("Label scan failed", "error", err)
		return Result{}
	}

	result, err := ParseResult(content)
	if err != nil {
		s.logger.Error("Failed to parse label scan response", "error", err, "content", content)
		return Result{}
	}

	s.cache.set(key, result)
	return result
}

// Close stops the cache's sweeper.
func (s *Scanner) Close() {
	s.cache.Close()
}
