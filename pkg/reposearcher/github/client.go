// Package github fetches repositories from the GitHub REST API.
//
// Every method returns an rx.Single. The request runs on a goroutine owned by
// the client, so subscribing never blocks; disposing the subscription drops
// the result.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/constants"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/i18n"
)

// Client talks to the GitHub API.
// It implements repositorylist.Service, languagelist.Service and
// login.Authenticator.
type Client struct {
	baseURL    string
	token      atomic.String
	perPage    int
	timeout    time.Duration
	languages  []string
	httpClient *http.Client
	localizer  *i18n.Localizer
	logger     *slog.Logger

	// Search responses by URL, replayed when GitHub answers 304.
	cache *expirable.LRU[string, cachedResponse]
	// Identical searches in flight share one round trip.
	inflight singleflight.Group
}

type cachedResponse struct {
	etag string
	body []byte
}

// Option configures the Client during construction.
type Option func(*clientConfig) error

type clientConfig struct {
	token      string
	perPage    int
	timeout    time.Duration
	languages  []string
	cacheSize  int
	cacheTTL   time.Duration
	httpClient *http.Client
	localizer  *i18n.Localizer
	logger     *slog.Logger
}

// New creates a Client for the API at baseURL. An empty baseURL uses
// constants.DefaultBaseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	cfg := &clientConfig{
		perPage:   constants.DefaultPerPage,
		timeout:   constants.DefaultTimeout,
		languages: constants.DefaultLanguages,
		cacheSize: constants.DefaultCacheSize,
		cacheTTL:  constants.DefaultCacheTTL,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := cfg.logger
	if logger == nil {
		logger = reposearcher.Logger("github")
	}

	c := &Client{
		baseURL:    baseURL,
		perPage:    cfg.perPage,
		timeout:    cfg.timeout,
		languages:  append([]string(nil), cfg.languages...),
		httpClient: httpClient,
		localizer:  cfg.localizer,
		logger:     logger,
	}
	c.token.Store(cfg.token)
	if cfg.cacheSize > 0 {
		c.cache = expirable.NewLRU[string, cachedResponse](cfg.cacheSize, nil, cfg.cacheTTL)
	}
	return c, nil
}

// WithToken sends token as a bearer token on search requests.
func WithToken(token string) Option {
	return func(cfg *clientConfig) error {
		cfg.token = strings.TrimSpace(token)
		return nil
	}
}

// SetToken replaces the token sent on search requests, typically after a
// successful Login. Safe for concurrent use.
func (c *Client) SetToken(token string) {
	c.token.Store(strings.TrimSpace(token))
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		if d <= 0 {
			return fmt.Errorf("github: timeout must be positive, got %s", d)
		}
		cfg.timeout = d
		return nil
	}
}

// WithPerPage sets how many repositories a search returns (1-100).
func WithPerPage(n int) Option {
	return func(cfg *clientConfig) error {
		if n < 1 || n > 100 {
			return fmt.Errorf("github: per page must be between 1 and 100, got %d", n)
		}
		cfg.perPage = n
		return nil
	}
}

// WithLanguages sets the languages offered by Languages.
func WithLanguages(languages []string) Option {
	return func(cfg *clientConfig) error {
		if len(languages) == 0 {
			return fmt.Errorf("github: language list is empty")
		}
		cfg.languages = languages
		return nil
	}
}

// WithCache sets the size and lifetime of the conditional request cache.
// A size of zero disables it.
func WithCache(size int, ttl time.Duration) Option {
	return func(cfg *clientConfig) error {
		if size < 0 {
			return fmt.Errorf("github: cache size must not be negative, got %d", size)
		}
		cfg.cacheSize = size
		cfg.cacheTTL = ttl
		return nil
	}
}

// WithLocalizer sets the catalog user-facing error messages come from.
func WithLocalizer(l *i18n.Localizer) Option {
	return func(cfg *clientConfig) error {
		cfg.localizer = l
		return nil
	}
}

// async runs fn on its own goroutine and reports through done.
func async[T any](ctx context.Context, fn func(context.Context) (T, error), done func(T, error)) {
	go func() {
		v, err := fn(ctx)
		done(v, err)
	}()
}
