// Package editor is the entry point for a presentation layer: it wires
// configuration, logging, the file codec, the editing session, the command
// dispatcher, labels and user settings together.
package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"csvedit/internal/command"
	"csvedit/internal/config"
	"csvedit/internal/fileio"
	"csvedit/internal/i18n"
	"csvedit/internal/sheet/handler"
	"csvedit/internal/sheet/service"
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrFontSize            = errors.New("font size out of range")
)

const (
	MinFontSize = 6
	MaxFontSize = 72
)

// Editor owns one document and the preferences around it. Like the session
// it drives, it expects a single caller (the UI thread).
type Editor struct {
	cfg        config.Config
	log        zerolog.Logger
	session    *service.Session
	dispatcher *handler.Dispatcher
	labels     *i18n.Catalog
	settings   config.Settings
}

// Start reads the environment, sets up logging and returns a ready Editor.
func Start() (*Editor, error) {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)
	return New(cfg, logger)
}

func New(cfg config.Config, logger zerolog.Logger) (*Editor, error) {
	codec, err := fileio.NewCodec(fileio.Options{
		CodePage:       cfg.ANSICodePage,
		SniffANSI:      cfg.SniffANSI,
		KeepBlankLines: cfg.KeepBlankLines,
	})
	if err != nil {
		return nil, err
	}
	labels, err := i18n.Default()
	if err != nil {
		return nil, err
	}
	settings, err := config.LoadSettings(cfg.SettingsFile, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("settings ignored")
	}
	if !labels.Has(settings.Language) {
		settings.Language = i18n.DefaultLanguage
	}

	e := &Editor{
		cfg:      cfg,
		log:      logger,
		session:  service.NewSession(codec, cfg.HistoryDepth, logger),
		labels:   labels,
		settings: settings,
	}
	e.dispatcher = handler.NewDispatcher(e.session, e, logger)

	logger.Info().
		Str("codepage", codec.CodePage()).
		Int("depth", e.session.History().Depth()).
		Str("lang", settings.Language).
		Msg("editor ready")
	return e, nil
}

// Do runs one command.
func (e *Editor) Do(ctx context.Context, req command.Request) (command.Result, error) {
	return e.dispatcher.Dispatch(ctx, req)
}

// Session exposes the document for rendering.
func (e *Editor) Session() *service.Session { return e.session }

func (e *Editor) Subscribe(l service.Listener) { e.session.Subscribe(l) }

func (e *Editor) Settings() config.Settings {
	s := e.settings
	s.Recent = append([]string(nil), e.settings.Recent...)
	return s
}

func (e *Editor) Language() string { return e.settings.Language }

// SetLanguage switches the labels and persists the choice.
func (e *Editor) SetLanguage(lang string) error {
	if !e.labels.Has(lang) {
		return fmt.Errorf("%q: %w", lang, ErrUnsupportedLanguage)
	}
	e.settings.Language = lang
	e.saveSettings()
	return nil
}

func (e *Editor) SetFontSize(size int) error {
	if size < MinFontSize || size > MaxFontSize {
		return fmt.Errorf("%d: %w", size, ErrFontSize)
	}
	e.settings.FontSize = size
	e.saveSettings()
	return nil
}

// Remember records path in the recent files list.
func (e *Editor) Remember(path string) {
	e.settings.Remember(path)
	e.saveSettings()
}

func (e *Editor) saveSettings() {
	if err := e.settings.Save(e.cfg.SettingsFile); err != nil {
		e.log.Warn().Err(err).Str("path", e.cfg.SettingsFile).Msg("settings not saved")
	}
}

// Label is the text for key in the current language.
func (e *Editor) Label(key string) string { return e.labels.Lookup(e.settings.Language, key) }

func (e *Editor) Labelf(key string, args ...any) string {
	return e.labels.Format(e.settings.Language, key, args...)
}

// Title is the window title.
func (e *Editor) Title() string { return e.session.Status().Title() }

// StatusLine renders rows, columns, encoding and separator.
func (e *Editor) StatusLine() string {
	st := e.session.Status()
	return e.Labelf("status_line",
		e.Label("status_rows"), st.Rows,
		e.Label("status_columns"), st.Columns,
		e.Label("status_encoding"), st.Encoding.DisplayName(),
		e.Label("status_separator"), fileio.SeparatorName(st.Separator),
	)
}

// ErrorMessage turns a command error about path into a localized message
// for an error dialog.
func (e *Editor) ErrorMessage(err error, path string) string {
	switch {
	case errors.Is(err, service.ErrEmptyFile):
		return e.Labelf("error_empty_file", path)
	case errors.Is(err, service.ErrInvalidSeparator):
		return e.Label("error_invalid_separator")
	}
	var ioErr *fileio.IOError
	if !errors.As(err, &ioErr) {
		return err.Error()
	}
	switch ioErr.Op {
	case "create", "write", "close":
		return e.Labelf("error_save", path, ioErr.Err)
	default:
		return e.Labelf("error_open", path, ioErr.Err)
	}
}
