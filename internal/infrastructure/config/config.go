package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/GriffinCanCode/CareFlow/internal/shared/types"
	"github.com/kelseyhightower/envconfig"
)

// ErrMissingValue is wrapped by Validate for every absent required value
var ErrMissingValue = errors.New("missing required configuration")

// ErrInvalidValue is wrapped by Validate for values out of range
var ErrInvalidValue = errors.New("invalid configuration")

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Flows     FlowsConfig
	Auth      AuthConfig
	Gateway   GatewayConfig
	Logging   LogConfig
	RateLimit RateLimitConfig

	// Catalog is read from Flows.File, when set
	Catalog []types.EndpointConfig `ignored:"true"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// FlowsConfig holds the remote flow URLs.
type FlowsConfig struct {
	QNAURL          string `envconfig:"QNA_AGENT_URL"`
	ReportURL       string `envconfig:"REPORT_ANALYZER_URL"`
	PrescriptionURL string `envconfig:"PRESCRIPTION_ANALYZER_URL"`
	BillURL         string `envconfig:"BILL_ANALYZER_URL"`
	HospitalURL     string `envconfig:"HOSPITAL_FINDER_URL"`
	File            string `envconfig:"FLOWS_FILE"`
}

// AuthConfig holds credentials sent with every flow call.
type AuthConfig struct {
	AppToken string `envconfig:"APP_TOKEN"`
	OrgID    string `envconfig:"ORG_ID"`
}

// GatewayConfig holds retry, timeout and attachment limits.
type GatewayConfig struct {
	MaxAttempts        int           `envconfig:"FLOW_MAX_ATTEMPTS" default:"2"`
	RetryDelay         time.Duration `envconfig:"FLOW_RETRY_DELAY" default:"3s"`
	TextTimeout        time.Duration `envconfig:"FLOW_TEXT_TIMEOUT" default:"60s"`
	UploadTimeout      time.Duration `envconfig:"FLOW_UPLOAD_TIMEOUT" default:"120s"`
	MaxAttachments     int           `envconfig:"FLOW_MAX_ATTACHMENTS" default:"10"`
	MaxAttachmentBytes int64         `envconfig:"FLOW_MAX_ATTACHMENT_BYTES" default:"26214400"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// displayNames are used when the catalog does not provide one
var displayNames = map[string]string{
	types.FlowQNA:          "QNA Agent",
	types.FlowReport:       "Report Analyzer",
	types.FlowPrescription: "Prescription Analyzer",
	types.FlowBill:         "Bill Analyzer",
	types.FlowHospital:     "Hospital Finder",
}

// Load loads configuration from environment variables and the optional catalog file.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Flows.File != "" {
		catalog, err := LoadCatalog(cfg.Flows.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg.Catalog = catalog
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration. Flow URLs and credentials have no defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Gateway: GatewayConfig{
			MaxAttempts:        2,
			RetryDelay:         3 * time.Second,
			TextTimeout:        60 * time.Second,
			UploadTimeout:      120 * time.Second,
			MaxAttachments:     10,
			MaxAttachmentBytes: 25 << 20,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

// Endpoints returns the endpoint set keyed by flow key.
// Catalog entries override environment URLs and default display names.
func (c *Config) Endpoints() map[string]types.EndpointConfig {
	urls := map[string]string{
		types.FlowQNA:          c.Flows.QNAURL,
		types.FlowReport:       c.Flows.ReportURL,
		types.FlowPrescription: c.Flows.PrescriptionURL,
		types.FlowBill:         c.Flows.BillURL,
		types.FlowHospital:     c.Flows.HospitalURL,
	}

	endpoints := make(map[string]types.EndpointConfig, len(urls))
	for key, url := range urls {
		endpoints[key] = types.EndpointConfig{
			Key:         key,
			URL:         url,
			DisplayName: displayNames[key],
		}
	}

	for _, entry := range c.Catalog {
		ep := endpoints[entry.Key]
		if entry.URL != "" {
			ep.URL = entry.URL
		}
		if entry.DisplayName != "" {
			ep.DisplayName = entry.DisplayName
		}
		endpoints[entry.Key] = ep
	}

	return endpoints
}

// Validate reports every missing or invalid value at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Auth.AppToken == "" {
		errs = append(errs, fmt.Errorf("%w: APP_TOKEN", ErrMissingValue))
	}
	if c.Auth.OrgID == "" {
		errs = append(errs, fmt.Errorf("%w: ORG_ID", ErrMissingValue))
	}

	endpoints := c.Endpoints()
	for _, key := range types.FlowKeys() {
		if endpoints[key].URL == "" {
			errs = append(errs, fmt.Errorf("%w: URL for flow %s", ErrMissingValue, key))
		}
	}

	if c.Gateway.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%w: FLOW_MAX_ATTEMPTS must be at least 1, got %d", ErrInvalidValue, c.Gateway.MaxAttempts))
	}
	if c.Gateway.TextTimeout <= 0 || c.Gateway.UploadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: flow timeouts must be positive", ErrInvalidValue))
	}
	if c.Gateway.RetryDelay <= 0 {
		errs = append(errs, fmt.Errorf("%w: FLOW_RETRY_DELAY must be positive, got %s", ErrInvalidValue, c.Gateway.RetryDelay))
	}

	return errors.Join(errs...)
}
