// Package logging provides structured logging using uber/zap.
//
// This package offers two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// It also adapts zap to the logger interfaces expected by the HTTP stack
// (go-retryablehttp's LeveledLogger and resty's Logger), so retry attempts
// and transport warnings land in the same stream as gateway logs.
//
// Example Usage:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	logger.Info("Invoking flow", zap.String("flow", "qna_agent"))
//	logger.Error("Flow call failed", zap.Error(err))
package logging
