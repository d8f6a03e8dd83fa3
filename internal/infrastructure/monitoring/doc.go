/*
Package monitoring provides metrics collection for the CareFlow backend.

# Overview

This package implements Prometheus-based metrics for the inbound HTTP API
and for outbound flow invocations made by the gateway.

# Features

- HTTP request metrics (latency, throughput, size)
- Flow invocation metrics (outcome, duration, attempts)
- Fallback usage by flow and reason
- Uptime

# Usage

	// Create metrics collector on its own registry
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Time a flow invocation
	timer := monitoring.NewTimer(metrics, "qna_agent")
	// ... perform call ...
	timer.Stop("success")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
*/
package monitoring
