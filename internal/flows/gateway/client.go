package gateway

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	headerOrg = "X-DataStax-Current-Org"
	userAgent = "CareFlow-Gateway/1.0"
)

type ctxKey int

const (
	flowKey ctxKey = iota
	attemptsKey
)

// withCall tags ctx with the flow key and a per-call attempt counter
func withCall(ctx context.Context, flow string, attempts *int32) context.Context {
	ctx = context.WithValue(ctx, flowKey, flow)
	return context.WithValue(ctx, attemptsKey, attempts)
}

// newClient creates a resty client whose transport retries transport
// failures with a fixed delay. timeout bounds each attempt.
func (g *Gateway) newClient(timeout time.Duration) *resty.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = g.cfg.MaxAttempts - 1
	retryClient.RetryWaitMin = g.cfg.RetryDelay
	retryClient.RetryWaitMax = g.cfg.RetryDelay
	retryClient.Backoff = fixedBackoff
	retryClient.CheckRetry = retryTransportErrors
	retryClient.RequestLogHook = g.onAttempt
	retryClient.Logger = g.logger.Leveled()
	retryClient.HTTPClient.Timeout = timeout
	if g.transport != nil {
		retryClient.HTTPClient.Transport = g.transport
	}

	restyClient := resty.NewWithClient(retryClient.StandardClient())
	restyClient.
		SetHeader(headerOrg, g.cfg.OrgID).
		SetHeader("User-Agent", userAgent).
		SetAuthToken(g.cfg.AppToken).
		SetLogger(g.logger.Sugared())

	return restyClient
}

// fixedBackoff waits the same delay before every retry
func fixedBackoff(min, _ time.Duration, _ int, _ *http.Response) time.Duration {
	return min
}

// retryTransportErrors retries only when no response was received, and
// only for errors retryablehttp considers transient. Any HTTP status, 422
// and 5xx included, is final.
func retryTransportErrors(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, nil, err)
	}
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return false, nil
}

// onAttempt runs before every outbound attempt
func (g *Gateway) onAttempt(_ retryablehttp.Logger, req *http.Request, attempt int) {
	ctx := req.Context()
	if counter, ok := ctx.Value(attemptsKey).(*int32); ok {
		atomic.AddInt32(counter, 1)
	}

	flow, _ := ctx.Value(flowKey).(string)
	if g.metrics != nil {
		g.metrics.RecordFlowAttempt(flow)
	}
	if attempt > 0 {
		g.logger.Sugar().Warnw("Retrying flow call", "flow", flow, "attempt", attempt+1)
	}
}
