package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pterm/pterm"
)

func parseLevel(s string) (pterm.LogLevel, error) {
	switch strings.ToLower(s) {
	case "debug":
		return pterm.LogLevelDebug, nil
	case "", "info":
		return pterm.LogLevelInfo, nil
	case "warn", "warning":
		return pterm.LogLevelWarn, nil
	case "error":
		return pterm.LogLevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %q", s)
	}
}

func newLogger(level pterm.LogLevel) *slog.Logger {
	l := pterm.DefaultLogger.
		WithLevel(level).
		WithTime(true).
		WithMaxWidth(1000)
	l.TimeFormat = "02 Jan 15:04:05"
	return slog.New(pterm.NewSlogHandler(l))
}
