// Package gateway forwards user text and files to remote AI flows and turns
// whatever comes back into a display-ready InvocationResult.
//
// Built on go-resty/resty for request construction and
// hashicorp/go-retryablehttp underneath it for the retry loop:
//   - JSON payloads for text-only calls, multipart for calls with files
//   - Bounded attempts with a fixed delay, transport failures only
//   - Per-attempt timeouts (longer for uploads)
//   - HTTP responses are classified, never retried
//
// Invoke never returns an error. Every failure is converted into a result
// whose Message holds a clearly marked fallback from the fallback package.
//
// Example Usage:
//
//	gw, err := gateway.New(gateway.ConfigFrom(cfg), gateway.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	result := gw.Invoke(ctx, types.FlowQNA, "What is diabetes?")
package gateway
