// Package http provides the gin handlers for the gateway API.
//
// Handlers:
//   - Root, Health: service status and configured flows
//   - AskQuestion, FindHospitals: JSON text operations
//   - Analyze: report, prescription and bill analysis from JSON or multipart
//   - MetricsHandler: JSON summary of the Prometheus counters
//
// Every operation answers 200 with the invocation result, success or not.
// Only malformed input is rejected with 400. Adding ?format=html renders the
// message from Markdown into sanitized HTML.
package http
