package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/CareFlow/internal/api/http"
	"github.com/GriffinCanCode/CareFlow/internal/api/middleware"
	"github.com/GriffinCanCode/CareFlow/internal/flows/gateway"
	"github.com/GriffinCanCode/CareFlow/internal/infrastructure/config"
	"github.com/GriffinCanCode/CareFlow/internal/infrastructure/logging"
	"github.com/GriffinCanCode/CareFlow/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/CareFlow/internal/service"
	"github.com/GriffinCanCode/CareFlow/internal/shared/types"
)

// readHeaderTimeout bounds slow clients. There is no write timeout: a
// retried upload can legitimately take minutes.
const readHeaderTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	gateway  *gateway.Gateway
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	registry *prometheus.Registry
}

// Option configures a Server
type Option func(*options)

type options struct {
	logger      *logging.Logger
	gatewayOpts []gateway.Option
}

// WithLogger replaces the logger built from configuration
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithGatewayOptions passes extra options to the flow gateway
func WithGatewayOptions(opts ...gateway.Option) Option {
	return func(o *options) { o.gatewayOpts = append(o.gatewayOpts, opts...) }
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		var err error
		logger, err = logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	logger.Info("Initializing CareFlow gateway",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.Int("max_attempts", cfg.Gateway.MaxAttempts),
		zap.Duration("retry_delay", cfg.Gateway.RetryDelay),
	)

	// Initialize metrics first (needed by the gateway)
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(registry)

	gwOpts := append([]gateway.Option{
		gateway.WithLogger(logger),
		gateway.WithMetrics(metrics),
	}, o.gatewayOpts...)
	gw, err := gateway.New(gateway.ConfigFrom(cfg), gwOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create flow gateway: %w", err)
	}
	for _, ep := range gw.Endpoints() {
		logger.Info("Flow configured", zap.String("flow", ep.Key), zap.String("name", ep.DisplayName))
	}

	assistant := service.NewAssistant(gw, logger)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(assistant, gw, apihttp.NewRenderer(), logger, cfg.Gateway.MaxAttachmentBytes)
	metricsHandler := apihttp.NewMetricsHandler(metrics)

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Metrics endpoints
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	router.GET("/metrics/json", metricsHandler.JSON)

	// Assistant operations
	v1 := router.Group("/v1")
	v1.POST("/qna", handlers.AskQuestion)
	v1.POST("/reports", handlers.Analyze(types.OperationReport))
	v1.POST("/prescriptions", handlers.Analyze(types.OperationPrescription))
	v1.POST("/bills", handlers.Analyze(types.OperationBill))
	v1.POST("/hospitals", handlers.FindHospitals)

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		gateway:  gw,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		registry: registry,
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until it stops.
// A server stopped by Shutdown returns nil.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight flow calls
// until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("Graceful shutdown failed", zap.Error(err))
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	// Sync logger before exit
	_ = s.logger.Sync()
	return nil
}
