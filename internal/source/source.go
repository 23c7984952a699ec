// Package source loads the four date-keyed observation maps from a
// local JSON file or an HTTP endpoint, with a snappy-compressed cache
// of the last good fetch so the dashboard survives source outages.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/weightlens/weightlens/internal/config"
	"github.com/weightlens/weightlens/internal/logging"
	"github.com/weightlens/weightlens/internal/metrics"
)

// Source loads observation maps.
type Source interface {
	Load(ctx context.Context) (metrics.Sources, error)
}

// New creates a Source based on configuration.
func New(cfg config.SourceConfig, logger *logging.Logger) (Source, error) {
	if logger == nil {
		logger = logging.Global()
	}

	switch cfg.Type {
	case "", "file":
		return &FileSource{path: cfg.Path}, nil

	case "http":
		timeout := cfg.FetchTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		return &HTTPSource{
			url:    cfg.URL,
			client: &http.Client{Timeout: timeout},
			cache:  NewCache(cfg.CachePath),
			logger: logger,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported source type: %s (supported: file, http)", cfg.Type)
	}
}

// FileSource reads observation maps from a JSON file.
type FileSource struct {
	path string
}

// Load reads and decodes the file.
func (s *FileSource) Load(ctx context.Context) (metrics.Sources, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return metrics.Sources{}, fmt.Errorf("failed to read source file: %w", err)
	}
	return decode(data)
}

// HTTPSource fetches observation maps from an endpoint, falling back
// to the cached last good response when the fetch fails.
type HTTPSource struct {
	url    string
	client *http.Client
	cache  *Cache
	logger *logging.Logger
}

// Load fetches the endpoint. A successful fetch refreshes the cache; a
// failed one is served from cache when possible.
func (s *HTTPSource) Load(ctx context.Context) (metrics.Sources, error) {
	data, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("source fetch failed, trying cache", "url", s.url, "error", err)
		cached, cacheErr := s.cache.Read()
		if cacheErr != nil {
			return metrics.Sources{}, fmt.Errorf("fetch failed (%w) and no usable cache: %v", err, cacheErr)
		}
		return decode(cached)
	}

	sources, err := decode(data)
	if err != nil {
		return metrics.Sources{}, err
	}

	if writeErr := s.cache.Write(data); writeErr != nil {
		s.logger.Warn("failed to refresh source cache", "error", writeErr)
	}
	return sources, nil
}

func (s *HTTPSource) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func decode(data []byte) (metrics.Sources, error) {
	var sources metrics.Sources
	if err := json.Unmarshal(data, &sources); err != nil {
		return metrics.Sources{}, fmt.Errorf("failed to decode source data: %w", err)
	}
	return sources, nil
}
