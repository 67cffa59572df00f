package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"csvedit/internal/command"
)

// Logging logs one line per command and hands handlers a child logger,
// tagged with the request id and command name, through zerolog.Ctx.
func Logging(logger zerolog.Logger) command.Middleware {
	return func(next command.HandlerFunc) command.HandlerFunc {
		return func(ctx context.Context, req command.Request) (command.Result, error) {
			l := logger.With().
				Str("rid", GetRequestID(ctx)).
				Str("cmd", req.Kind.String()).
				Logger()
			start := time.Now()
			res, err := next(l.WithContext(ctx), req)
			dur := time.Since(start)

			ev := l.Debug()
			if err != nil {
				ev = l.Warn().Err(err)
			}
			ev.Dur("dur", dur).
				Bool("dirty", res.Status.Dirty).
				Int("rows", res.Status.Rows).
				Int("cols", res.Status.Columns).
				Msg("command")
			return res, err
		}
	}
}
