// Package server wires the gateway API together.
//
// This package orchestrates all components:
//   - HTTP routing with Gin framework
//   - Middleware stack (request id, access log, metrics, CORS, rate limiting, recovery)
//   - Flow gateway and assistant construction
//   - Prometheus registry and /metrics exposure
//
// Server Lifecycle:
//  1. Load and validate configuration from the environment
//  2. Initialize logger (production or development)
//  3. Create the metrics registry
//  4. Create the flow gateway and the assistant
//  5. Setup HTTP routes and middleware
//  6. Start HTTP server
//  7. Graceful shutdown on signal
//
// Example Usage:
//
//	cfg, err := config.Load()
//	srv, err := server.NewServer(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
