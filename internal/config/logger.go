package config

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates a timestamped logger writing to w. The level comes from
// LOG_LEVEL (debug, info, warn, error); unset or invalid means info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("invalid LOG_LEVEL, using info", "err", err)
	}
	return logger
}

// OpenLogFile returns a writer for the file named by LOG_FILE, appending to it.
// Without LOG_FILE it returns io.Discard. The returned close function is never nil.
func OpenLogFile() (io.Writer, func() error, error) {
	path := GetEnv("LOG_FILE", "")
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}
