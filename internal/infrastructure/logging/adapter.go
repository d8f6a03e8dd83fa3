package logging

import (
	"go.uber.org/zap"
)

// LeveledAdapter satisfies retryablehttp.LeveledLogger.
type LeveledAdapter struct {
	sugar *zap.SugaredLogger
}

// Leveled adapts l for go-retryablehttp.
func (l *Logger) Leveled() *LeveledAdapter {
	return &LeveledAdapter{sugar: l.Logger.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (a *LeveledAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.sugar.Errorw(msg, keysAndValues...)
}

func (a *LeveledAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.sugar.Infow(msg, keysAndValues...)
}

// Debug is used for per-attempt noise
func (a *LeveledAdapter) Debug(msg string, keysAndValues ...interface{}) {
	a.sugar.Debugw(msg, keysAndValues...)
}

func (a *LeveledAdapter) Warn(msg string, keysAndValues ...interface{}) {
	a.sugar.Warnw(msg, keysAndValues...)
}

// Sugared adapts l for resty, which logs through Errorf/Warnf/Debugf.
func (l *Logger) Sugared() *zap.SugaredLogger {
	return l.Logger.Sugar()
}
