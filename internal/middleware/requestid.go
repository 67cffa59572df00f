package middleware

import (
	"context"

	"github.com/google/uuid"

	"csvedit/internal/command"
)

type ctxKey int

const requestIDKey ctxKey = 1

// RequestID gives every request an id, keeping one the caller already set.
func RequestID() command.Middleware {
	return func(next command.HandlerFunc) command.HandlerFunc {
		return func(ctx context.Context, req command.Request) (command.Result, error) {
			if req.ID == "" {
				req.ID = uuid.NewString()
			}
			return next(context.WithValue(ctx, requestIDKey, req.ID), req)
		}
	}
}

func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
