// Package logger wraps zap with request-scoped context enrichment.
package logger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ContextKey string

// RequestIDKey is the typed context key the request ID travels under.
const RequestIDKey ContextKey = "request_id"

var (
	log  *zap.Logger
	once sync.Once
)

// Init builds the process-wide logger. Development gets colored console
// output; everything else gets JSON with ISO-8601 timestamps. Calling it
// again after the first call is a no-op.
func Init(env string) {
	once.Do(func() {
		var cfg zap.Config
		if env == "development" {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			cfg = zap.NewProductionConfig()
			cfg.EncoderConfig.TimeKey = "timestamp"
			cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		}

		l, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
		log = l
	})
}

// GetLogger exposes the underlying zap logger.
func GetLogger() *zap.Logger {
	return log
}

// WithContext returns the logger enriched with the request ID found in ctx.
// The ID may live under the typed key or under the plain string key that gin
// request contexts carry.
func WithContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return log
	}
	if id := requestIDFrom(ctx); id != "" {
		return log.With(zap.String("request_id", id))
	}
	return log
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	if id, ok := ctx.Value("request_id").(string); ok { //nolint:staticcheck
		return id
	}
	return ""
}

func Info(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Info(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Error(msg, fields...)
}

func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Debug(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Warn(msg, fields...)
}

// LogRequest emits the single access-log line for a completed HTTP request.
func LogRequest(ctx context.Context, method, path string, status int, latency time.Duration, clientIP string) {
	WithContext(ctx).Info("HTTP Request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("client_ip", clientIP),
	)
}
