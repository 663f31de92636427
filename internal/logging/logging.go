// Package logging builds the process-wide structured logger, mirroring the
// teacher's string-level-to-slog.Level mapping and optional log-to-file
// behavior.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// New builds a slog.Logger at the given level string (error|warn|info|debug,
// defaulting to warn on anything else). If logDir is non-empty, logs go to
// a timestamped, pid-suffixed file under logDir instead of stderr.
func New(level, logDir string) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "error":
		lvl = slog.LevelError
	case "warn":
		lvl = slog.LevelWarn
	case "info":
		lvl = slog.LevelInfo
	case "debug":
		lvl = slog.LevelDebug
	default:
		lvl = slog.LevelWarn
	}

	target := os.Stderr
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, fmt.Errorf("could not set up log dir %s: %w", logDir, err)
		}

		name := fmt.Sprintf("pam-isolate-%s-%d.log",
			time.Now().Format("2006-01-02_15-04-05"), os.Getpid())

		logFile, err := os.Create(filepath.Join(logDir, name))
		if err != nil {
			return nil, fmt.Errorf("could not create log file %s: %w", name, err)
		}
		target = logFile
	}

	handler := slog.NewTextHandler(target, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler), nil
}
