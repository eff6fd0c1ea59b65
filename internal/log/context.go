// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	userIDKey    ctxKey = "user_id"
	sessionIDKey ctxKey = "session_id"
)

func with(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, v)
}

func value(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

// ContextWithRequestID stores the HTTP request ID in ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return with(ctx, requestIDKey, id)
}

// ContextWithUser stores the voice platform user and session IDs in ctx.
func ContextWithUser(ctx context.Context, userID, sessionID string) context.Context {
	return with(with(ctx, userIDKey, userID), sessionIDKey, sessionID)
}

func RequestIDFromContext(ctx context.Context) string { return value(ctx, requestIDKey) }

func UserIDFromContext(ctx context.Context) string { return value(ctx, userIDKey) }

func SessionIDFromContext(ctx context.Context) string { return value(ctx, sessionIDKey) }

// WithContext enriches logger with the identifiers carried by ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	if ctx == nil {
		return logger
	}
	builder := logger.With()
	added := false
	for _, f := range []struct {
		name string
		v    string
	}{
		{FieldRequestID, RequestIDFromContext(ctx)},
		{FieldUserID, UserIDFromContext(ctx)},
		{FieldSessionID, SessionIDFromContext(ctx)},
	} {
		if f.v != "" {
			builder = builder.Str(f.name, f.v)
			added = true
		}
	}
	if !added {
		return logger
	}
	return builder.Logger()
}

// WithComponentFromContext returns a component logger enriched with the
// identifiers carried by ctx.
func WithComponentFromContext(ctx context.Context, component string) zerolog.Logger {
	return WithContext(ctx, WithComponent(component))
}
