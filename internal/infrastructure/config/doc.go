// Package config provides 12-factor configuration management for the CareFlow backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// Flow URLs and display names may additionally come from a YAML or TOML
// catalog file named by FLOWS_FILE; values from the file override the
// environment.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Flows: Remote flow URLs and optional catalog file
//   - Auth: Application token and organization id
//   - Gateway: Retry, timeout and attachment limits
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// Environment Variables:
//   - QNA_AGENT_URL, REPORT_ANALYZER_URL, PRESCRIPTION_ANALYZER_URL
//   - BILL_ANALYZER_URL, HOSPITAL_FINDER_URL, FLOWS_FILE
//   - APP_TOKEN, ORG_ID
//   - FLOW_MAX_ATTEMPTS, FLOW_RETRY_DELAY, FLOW_TEXT_TIMEOUT, FLOW_UPLOAD_TIMEOUT
//   - FLOW_MAX_ATTACHMENTS, FLOW_MAX_ATTACHMENT_BYTES
//   - PORT, HOST, LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
