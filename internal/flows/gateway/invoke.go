package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/GriffinCanCode/CareFlow/internal/flows/fallback"
	"github.com/GriffinCanCode/CareFlow/internal/flows/normalize"
	"github.com/GriffinCanCode/CareFlow/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/CareFlow/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// errorDetailLen bounds how much of an error body is reported
const errorDetailLen = 200

// prettyJSON renders unmatched bodies with stable key order
var prettyJSON = sonic.Config{SortMapKeys: true}.Froze()

// Invoke calls the flow registered under endpointKey. It always returns a
// result with a renderable Message; failures carry fallback text.
func (g *Gateway) Invoke(ctx context.Context, endpointKey, inputText string, attachments ...types.Attachment) (result *types.InvocationResult) {
	endpoint, ok := g.endpoints[endpointKey]
	if !ok {
		g.record("unknown", monitoring.OutcomeUnknownEndpoint, monitoring.NewTimer(g.metrics, "unknown"))
		g.logger.Warn("Unknown flow endpoint", zap.String("flow", endpointKey))
		return &types.InvocationResult{
			Success:  false,
			Message:  fallback.Render(endpointKey, inputText, true),
			Error:    fmt.Sprintf("%v: %s", ErrUnknownEndpoint, endpointKey),
			Endpoint: endpointKey,
		}
	}

	timer := monitoring.NewTimer(g.metrics, endpointKey)
	req := &types.InvocationRequest{
		EndpointKey: endpointKey,
		InputText:   inputText,
		Attachments: attachments,
		SessionID:   g.newSessionID(),
	}

	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("Flow invocation panicked", zap.String("flow", endpointKey), zap.Any("panic", r))
			result = g.failure(req, fmt.Sprintf("internal error: %v", r), inputText)
			g.record(endpointKey, monitoring.OutcomeTransportError, timer)
		}
	}()

	if err := g.checkAttachments(attachments); err != nil {
		g.record(endpointKey, monitoring.OutcomeRejected, timer)
		return g.failure(req, err.Error(), inputText)
	}

	var attempts int32
	resp, err := g.send(withCall(ctx, endpointKey, &attempts), endpoint, req)
	if err != nil {
		prefix := "API call failed"
		if req.HasAttachments() {
			prefix = "File upload failed"
		}
		result = g.failure(req, fmt.Sprintf("%s: %v", prefix, err), inputText)
		result.Attempts = int(atomic.LoadInt32(&attempts))

		g.record(endpointKey, monitoring.OutcomeTransportError, timer)
		g.logger.Warn("Flow call failed",
			zap.String("flow", endpointKey),
			zap.String("session_id", req.SessionID),
			zap.Int("attempts", result.Attempts),
			zap.Error(err),
		)
		return result
	}

	result, outcome := g.classify(endpoint, req, resp)
	result.Attempts = int(atomic.LoadInt32(&attempts))
	duration := g.record(endpointKey, outcome, timer)

	g.logger.Info("Flow call completed",
		zap.String("flow", endpointKey),
		zap.String("session_id", req.SessionID),
		zap.Int("status", result.StatusCode),
		zap.Bool("success", result.Success),
		zap.Int("attempts", result.Attempts),
		zap.Duration("duration", duration),
	)
	return result
}

// send performs the call with the client matching the payload style
func (g *Gateway) send(ctx context.Context, endpoint types.EndpointConfig, req *types.InvocationRequest) (*resty.Response, error) {
	if req.HasAttachments() {
		return g.upload.R().
			SetContext(ctx).
			SetMultipartFields(multipartFields(req)...).
			Post(endpoint.URL)
	}

	body, err := jsonBody(req)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	return g.text.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(endpoint.URL)
}

// classify turns a received response into a result
func (g *Gateway) classify(endpoint types.EndpointConfig, req *types.InvocationRequest, resp *resty.Response) (*types.InvocationResult, string) {
	status := resp.StatusCode()

	switch status {
	case http.StatusOK:
		message, raw := parseBody(resp.Body(), endpoint.DisplayName)
		return &types.InvocationResult{
			Success:    true,
			Message:    message,
			Raw:        raw,
			Endpoint:   endpoint.Key,
			SessionID:  req.SessionID,
			StatusCode: status,
		}, monitoring.OutcomeSuccess

	case http.StatusUnprocessableEntity:
		result := g.failure(req, "API Error 422: Validation error", "")
		result.StatusCode = status
		return result, monitoring.OutcomeValidationError

	default:
		result := g.failure(req, fmt.Sprintf("API Error %d: %s", status, truncate(resp.String(), errorDetailLen)), "")
		result.StatusCode = status
		return result, monitoring.OutcomeHTTPError
	}
}

// parseBody extracts the display message from a 200 body
func parseBody(body []byte, displayName string) (string, interface{}) {
	text := string(body)
	if strings.TrimSpace(text) == "" {
		return fmt.Sprintf("%s returned an empty response.", displayName), text
	}

	data, err := normalize.Decode(body)
	if err != nil {
		// Not JSON: show the body verbatim
		return text, text
	}

	if message, ok := normalize.Extract(data); ok {
		return message, data
	}

	pretty, err := prettyJSON.MarshalIndent(data, "", "  ")
	if err != nil {
		return text, data
	}
	return string(pretty), data
}

// failure builds a result carrying the endpoint fallback with the demo banner
func (g *Gateway) failure(req *types.InvocationRequest, detail, input string) *types.InvocationResult {
	return &types.InvocationResult{
		Success:   false,
		Message:   fallback.Render(req.EndpointKey, input, true),
		Error:     detail,
		Endpoint:  req.EndpointKey,
		SessionID: req.SessionID,
	}
}

// record stops the timer and counts fallbacks
func (g *Gateway) record(flow, outcome string, timer *monitoring.Timer) time.Duration {
	duration := timer.Stop(outcome)
	if outcome != monitoring.OutcomeSuccess && g.metrics != nil {
		g.metrics.RecordFallback(flow, outcome)
	}
	return duration
}

// truncate keeps the first n characters of s
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
