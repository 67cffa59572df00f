package middleware

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"

	"csvedit/internal/command"
)

// ErrInternal is returned in place of a handler panic.
var ErrInternal = errors.New("internal error")

func Recover(logger zerolog.Logger) command.Middleware {
	return func(next command.HandlerFunc) command.HandlerFunc {
		return func(ctx context.Context, req command.Request) (res command.Result, err error) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Str("rid", req.ID).
						Str("cmd", req.Kind.String()).
						Interface("panic", rec).
						Bytes("stack", debug.Stack()).
						Msg("panic")
					res, err = command.Result{}, fmt.Errorf("%s: %w", req.Kind, ErrInternal)
				}
			}()
			return next(ctx, req)
		}
	}
}
