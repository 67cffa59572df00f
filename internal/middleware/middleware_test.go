package middleware

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"csvedit/internal/command"
)

func TestRecoverTurnsPanicIntoError(t *testing.T) {
	var buf bytes.Buffer
	h := Recover(zerolog.New(&buf))(func(context.Context, command.Request) (command.Result, error) {
		panic("boom")
	})

	_, err := h(context.Background(), command.Request{Kind: command.Save})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("error = %v, want ErrInternal", err)
	}
	if !strings.Contains(buf.String(), `"panic":"boom"`) {
		t.Errorf("log = %s, want the panic value", buf.String())
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID()(func(ctx context.Context, req command.Request) (command.Result, error) {
		if GetRequestID(ctx) != req.ID {
			t.Errorf("context id %q != request id %q", GetRequestID(ctx), req.ID)
		}
		seen = req.ID
		return command.Result{}, nil
	})

	if _, err := h(context.Background(), command.Request{}); err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("generated id %q is not a uuid: %v", seen, err)
	}

	if _, err := h(context.Background(), command.Request{ID: "given"}); err != nil {
		t.Fatal(err)
	}
	if seen != "given" {
		t.Errorf("id = %q, want the caller's", seen)
	}
	if GetRequestID(context.Background()) != "" {
		t.Error("GetRequestID on a bare context returned an id")
	}
}

func TestLoggingTagsChildLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	h := command.Chain(func(ctx context.Context, req command.Request) (command.Result, error) {
		zerolog.Ctx(ctx).Info().Msg("inside")
		return command.Result{}, errors.New("nope")
	}, RequestID(), Logging(logger))

	_, err := h(context.Background(), command.Request{ID: "r1", Kind: command.Undo})
	if err == nil {
		t.Fatal("handler error was swallowed")
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), buf.String())
	}
	for _, l := range lines {
		if !strings.Contains(l, `"rid":"r1"`) || !strings.Contains(l, `"cmd":"undo"`) {
			t.Errorf("line lacks request fields: %s", l)
		}
	}
	if !strings.Contains(lines[1], `"level":"warn"`) || !strings.Contains(lines[1], `"error":"nope"`) {
		t.Errorf("failure line = %s", lines[1])
	}
}
