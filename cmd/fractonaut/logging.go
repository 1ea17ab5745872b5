package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/san-kum/fractonaut/internal/config"
	"github.com/san-kum/fractonaut/internal/engine"
)

// setupLogging installs the engine logger. Logs go to cfg.File when set,
// otherwise to stderr if allowStderr, otherwise nowhere. The returned
// function closes the log file.
func setupLogging(cfg config.LogConfig, allowStderr bool) (func(), error) {
	var level slog.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}

	var (
		out     io.Writer
		closeFn = func() {}
	)
	switch {
	case cfg.File != "":
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	case allowStderr:
		out = os.Stderr
	default:
		return closeFn, nil
	}

	engine.SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return closeFn, nil
}
