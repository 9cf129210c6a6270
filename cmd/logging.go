package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"bus-ticket-cli/config"
)

// newLogger builds the text logger described by cfg. Records go to cfg.File
// when set, otherwise to fallback. The returned func closes the log file.
func newLogger(cfg config.LogsConfig, fallback io.Writer) (*slog.Logger, func() error, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	out := fallback
	closer := func() error { return nil }
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f.Close
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return logger.With("app", appName), closer, nil
}
