package events

import (
	"github.com/ThreeDotsLabs/watermill"
	"go.uber.org/zap"
)

// zapLoggerAdapter feeds watermill's internal logging into the app logger.
type zapLoggerAdapter struct {
	log *zap.Logger
}

func newZapLoggerAdapter(log *zap.Logger) watermill.LoggerAdapter {
	return &zapLoggerAdapter{log: log.With(zap.String("component", "events"))}
}

func (a *zapLoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(zapFields(fields), zap.Error(err))...)
}

func (a *zapLoggerAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, zapFields(fields)...)
}

func (a *zapLoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, zapFields(fields)...)
}

func (a *zapLoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, zapFields(fields)...)
}

func (a *zapLoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &zapLoggerAdapter{log: a.log.With(zapFields(fields)...)}
}

func zapFields(fields watermill.LogFields) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		out = append(out, zap.Any(key, value))
	}
	return out
}
