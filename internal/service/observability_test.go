package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "generate-report",
		RunID:    "run-1",
		Duration: 15 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"sheets": 6, "mode": "wip"},
	})
	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "use_case=generate-report")
	assert.Contains(t, out, "run_id=run-1")
	assert.Contains(t, out, "duration_ms=15")
	// fields are logged in key order
	assert.Less(t, strings.Index(out, "mode=wip"), strings.Index(out, "sheets=6"))
}

func TestLogUseCaseObserver_Error(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "flatten-project", Err: errors.New("bad file")})
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `error="bad file"`)
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
}
