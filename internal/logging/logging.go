// Package logging sets up the per-run log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/mspreport/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileTimeLayout is the timestamp prefix of every log file name.
const FileTimeLayout = "2006-01-02 15-04-05"

// ParseLevel maps DEBUG, INFO, WARN and ERROR (any case) to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// FileName returns the log file path for a run started at now.
func FileName(dir string, now time.Time) string {
	return filepath.Join(dir, now.Format(FileTimeLayout)+"-mspreport.log")
}

// Logger is a slog.Logger backed by a rotating file.
type Logger struct {
	*slog.Logger
	Path string
	file *lumberjack.Logger
}

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// New opens a rotating log file under cfg.Dir. Records carry the calling
// function and line.
func New(cfg config.LogConfig, now time.Time) (*Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	path := FileName(cfg.Dir, now)
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
	return &Logger{
		Logger: NewWriterLogger(file, lvl),
		Path:   path,
		file:   file,
	}, nil
}

// NewWriterLogger builds the text logger used for run logs on any writer.
func NewWriterLogger(w io.Writer, lvl slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: true,
	}))
}
