// Package main is the entry point for the CareFlow gateway server.
//
// The server exposes five medical assistant operations over HTTP and
// forwards each one to a remote AI flow, returning a normalized message.
//
// Architecture:
//
//	UI → CareFlow gateway → Remote flows (QnA, report, prescription, bill, hospital)
//
// The server provides:
//   - REST API for the assistant operations (JSON and multipart)
//   - Retry with fixed delay on transport failures
//   - Demo-mode fallback messages when a flow is unavailable
//   - Prometheus metrics and rate limiting
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Optional YAML or TOML flow catalog (FLOWS_FILE or -flows)
//
// Usage:
//
//	# Production mode
//	APP_TOKEN=... ORG_ID=... QNA_AGENT_URL=... ./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
