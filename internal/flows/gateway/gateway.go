package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/GriffinCanCode/CareFlow/internal/infrastructure/config"
	"github.com/GriffinCanCode/CareFlow/internal/infrastructure/logging"
	"github.com/GriffinCanCode/CareFlow/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/CareFlow/internal/shared/types"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

var (
	ErrUnknownEndpoint    = errors.New("unknown endpoint")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrMissingEndpoint    = errors.New("missing endpoint configuration")
	ErrAttachmentLimit    = errors.New("attachment limit exceeded")
)

// Defaults applied to zero-valued Config fields
const (
	DefaultMaxAttempts        = 2
	DefaultRetryDelay         = 3 * time.Second
	DefaultTextTimeout        = 60 * time.Second
	DefaultUploadTimeout      = 120 * time.Second
	DefaultMaxAttachments     = 10
	DefaultMaxAttachmentBytes = 25 << 20
)

// Config is everything the gateway needs, supplied by the caller.
type Config struct {
	Endpoints map[string]types.EndpointConfig
	AppToken  string
	OrgID     string

	MaxAttempts   int
	RetryDelay    time.Duration
	TextTimeout   time.Duration
	UploadTimeout time.Duration

	MaxAttachments     int
	MaxAttachmentBytes int64
}

// ConfigFrom builds a gateway Config from application configuration
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Endpoints:          cfg.Endpoints(),
		AppToken:           cfg.Auth.AppToken,
		OrgID:              cfg.Auth.OrgID,
		MaxAttempts:        cfg.Gateway.MaxAttempts,
		RetryDelay:         cfg.Gateway.RetryDelay,
		TextTimeout:        cfg.Gateway.TextTimeout,
		UploadTimeout:      cfg.Gateway.UploadTimeout,
		MaxAttachments:     cfg.Gateway.MaxAttachments,
		MaxAttachmentBytes: cfg.Gateway.MaxAttachmentBytes,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.TextTimeout <= 0 {
		c.TextTimeout = DefaultTextTimeout
	}
	if c.UploadTimeout <= 0 {
		c.UploadTimeout = DefaultUploadTimeout
	}
	if c.MaxAttachments <= 0 {
		c.MaxAttachments = DefaultMaxAttachments
	}
	if c.MaxAttachmentBytes <= 0 {
		c.MaxAttachmentBytes = DefaultMaxAttachmentBytes
	}
	return c
}

func (c Config) validate() error {
	if c.AppToken == "" || c.OrgID == "" {
		return fmt.Errorf("%w: app token and organization id are required", ErrMissingCredentials)
	}
	if len(c.Endpoints) == 0 {
		return fmt.Errorf("%w: no endpoints configured", ErrMissingEndpoint)
	}
	for key, ep := range c.Endpoints {
		if ep.URL == "" {
			return fmt.Errorf("%w: URL for %s", ErrMissingEndpoint, key)
		}
	}
	return nil
}

// Gateway invokes remote flows. Safe for concurrent use; it holds no
// state that changes between calls.
type Gateway struct {
	cfg       Config
	endpoints map[string]types.EndpointConfig

	text   *resty.Client
	upload *resty.Client

	logger       *logging.Logger
	metrics      *monitoring.Metrics
	transport    http.RoundTripper
	newSessionID func() string
}

// Option configures a Gateway
type Option func(*Gateway)

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithMetrics records invocations on metrics
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(g *Gateway) {
		g.metrics = metrics
	}
}

// WithTransport replaces the network transport underneath the retry loop
func WithTransport(rt http.RoundTripper) Option {
	return func(g *Gateway) {
		g.transport = rt
	}
}

// WithSessionIDFunc replaces the per-call session id generator
func WithSessionIDFunc(fn func() string) Option {
	return func(g *Gateway) {
		if fn != nil {
			g.newSessionID = fn
		}
	}
}

// New creates a gateway. It fails when credentials or endpoint URLs are missing.
func New(cfg Config, opts ...Option) (*Gateway, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	endpoints := make(map[string]types.EndpointConfig, len(cfg.Endpoints))
	for key, ep := range cfg.Endpoints {
		ep.Key = key
		if ep.DisplayName == "" {
			ep.DisplayName = key
		}
		endpoints[key] = ep
	}
	cfg.Endpoints = endpoints

	g := &Gateway{
		cfg:          cfg,
		endpoints:    endpoints,
		logger:       logging.NewNop(),
		newSessionID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.Named("gateway")

	g.text = g.newClient(cfg.TextTimeout)
	g.upload = g.newClient(cfg.UploadTimeout)

	return g, nil
}

// Endpoint returns the configuration for key
func (g *Gateway) Endpoint(key string) (types.EndpointConfig, bool) {
	ep, ok := g.endpoints[key]
	return ep, ok
}

// Endpoints returns all configured endpoints sorted by key
func (g *Gateway) Endpoints() []types.EndpointConfig {
	list := make([]types.EndpointConfig, 0, len(g.endpoints))
	for _, ep := range g.endpoints {
		list = append(list, ep)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Key < list[j].Key })
	return list
}
