package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanshika/degrees/internal/config"
)

// New builds the process logger, writing to stdout.
func New(cfg config.LoggingConfig) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg)
}

// NewWithWriter is New with an explicit destination. The command line tool
// logs to stderr so results on stdout stay clean.
func NewWithWriter(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   cfg.IncludeCaller,
		ReplaceAttr: trimSource,
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// parseLevel accepts slog level names, including offsets like "debug+2", and
// the "warning" alias. Anything else is info.
func parseLevel(level string) slog.Level {
	level = strings.TrimSpace(level)
	if strings.EqualFold(level, "warning") {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// trimSource shortens caller paths to file:line.
func trimSource(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.SourceKey {
		return a
	}
	if src, ok := a.Value.Any().(*slog.Source); ok {
		src.File = filepath.Base(src.File)
	}
	return a
}
