package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"csvedit/internal/command"
	"csvedit/internal/middleware"
	"csvedit/internal/sheet/service"
)

var ErrUnknownCommand = errors.New("unknown command")

// Preferences is the part of the user settings commands touch.
type Preferences interface {
	SetLanguage(lang string) error
	Remember(path string)
}

// Register binds every command kind to a session operation. SetLanguage is
// only bound when prefs is not nil.
func Register(s *service.Session, prefs Preferences) map[command.Kind]command.HandlerFunc {
	m := map[command.Kind]command.HandlerFunc{
		command.New: func(context.Context, command.Request) (command.Result, error) {
			s.New()
			return done(s, nil)
		},
		command.Open:   open(s),
		command.Load:   load(s, prefs),
		command.Save:   save(s, prefs),
		command.SaveAs: save(s, prefs),
		command.Close: func(context.Context, command.Request) (command.Result, error) {
			s.Close()
			return done(s, nil)
		},
		command.Import: func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, s.Import(req.Path, req.HasHeader))
		},
		command.Export: func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, s.Export(req.Path))
		},
		command.Undo: replay(s, s.Undo),
		command.Redo: replay(s, s.Redo),
		command.InsertRowAbove: func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, s.InsertRow(req.Row))
		},
		command.InsertRowBelow: func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, s.InsertRow(req.Row+1))
		},
		command.InsertColumnLeft: func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, s.InsertColumn(req.Col))
		},
		command.InsertColumnRight: func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, s.InsertColumn(req.Col+1))
		},
		command.DeleteRow: func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, s.DeleteRows(selection(req.Rows, req.Row)...))
		},
		command.DeleteColumn: func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, s.DeleteColumns(selection(req.Cols, req.Col)...))
		},
		command.BeginEdit: func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, s.BeginEdit(req.Row, req.Col))
		},
		command.CommitEdit: func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, s.CommitEdit(req.Value))
		},
		command.CancelEdit: func(context.Context, command.Request) (command.Result, error) {
			s.CancelEdit()
			return done(s, nil)
		},
		command.RenameHeader: func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, s.RenameHeader(req.Col, req.Value))
		},
		command.ResizeColumn: func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, s.ResizeColumn(req.Col))
		},
		command.ResizeRow: func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, s.ResizeRow(req.Row))
		},
		command.SetEncoding: func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, s.SetEncoding(req.Encoding))
		},
		command.SetSeparator: func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, s.SetSeparator(req.Separator))
		},
	}
	if prefs != nil {
		m[command.SetLanguage] = func(_ context.Context, req command.Request) (command.Result, error) {
			return done(s, prefs.SetLanguage(req.Language))
		}
	}
	return m
}

func open(s *service.Session) command.HandlerFunc {
	return func(ctx context.Context, req command.Request) (command.Result, error) {
		doc, err := s.Open(req.Path)
		if err != nil {
			return done(s, err)
		}
		zerolog.Ctx(ctx).Debug().
			Str("path", req.Path).
			Str("enc", doc.Encoding.String()).
			Str("charset", doc.Charset).
			Msg("open dialog seeded")
		res, _ := done(s, nil)
		res.Document = &doc
		return res, nil
	}
}

func load(s *service.Session, prefs Preferences) command.HandlerFunc {
	return func(_ context.Context, req command.Request) (command.Result, error) {
		opts := service.LoadOptions{Encoding: req.Encoding, Separator: req.Separator, HasHeader: req.HasHeader}
		if err := s.Load(req.Path, opts); err != nil {
			return done(s, err)
		}
		if prefs != nil {
			prefs.Remember(req.Path)
		}
		return done(s, nil)
	}
}

// save serves both Save and SaveAs: a request without a path saves in place.
func save(s *service.Session, prefs Preferences) command.HandlerFunc {
	return func(_ context.Context, req command.Request) (command.Result, error) {
		if req.Kind == command.Save || req.Path == "" {
			return done(s, s.Save())
		}
		if err := s.SaveAs(req.Path); err != nil {
			return done(s, err)
		}
		if prefs != nil {
			prefs.Remember(req.Path)
		}
		return done(s, nil)
	}
}

func replay(s *service.Session, step func() bool) command.HandlerFunc {
	return func(context.Context, command.Request) (command.Result, error) {
		changed := step()
		res, _ := done(s, nil)
		res.Changed = changed
		return res, nil
	}
}

// Dispatcher runs requests through the middleware chain to their handler.
type Dispatcher struct {
	handlers map[command.Kind]command.HandlerFunc
}

// NewDispatcher wires the session's handlers behind recover, request id and
// logging middleware, in that order.
func NewDispatcher(s *service.Session, prefs Preferences, logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{handlers: make(map[command.Kind]command.HandlerFunc)}
	for k, h := range Register(s, prefs) {
		d.handlers[k] = command.Chain(h,
			middleware.Recover(logger),
			middleware.RequestID(),
			middleware.Logging(logger),
		)
	}
	return d
}

func (d *Dispatcher) Dispatch(ctx context.Context, req command.Request) (command.Result, error) {
	h, ok := d.handlers[req.Kind]
	if !ok {
		return command.Result{}, fmt.Errorf("%s: %w", req.Kind, ErrUnknownCommand)
	}
	return h(ctx, req)
}
