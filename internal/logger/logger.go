// Package logger configures the process-wide zerolog logger. The TUI owns
// the terminal, so logs go to a file under the user state dir instead of
// stderr; components that never log get a Nop logger.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// New opens the log file and returns a logger writing to it. When the file
// cannot be opened the logger is a no-op rather than an error: logging is
// never worth failing startup over.
func New() (zerolog.Logger, io.Closer) {
	zerolog.SetGlobalLevel(level())

	path, err := logPath()
	if err != nil {
		return zerolog.Nop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return zerolog.Nop(), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil
	}

	log := zerolog.New(f).With().Timestamp().Logger()
	return log, f
}

func level() zerolog.Level {
	switch strings.ToLower(os.Getenv("HR_TUI_LOG_LEVEL")) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func logPath() (string, error) {
	if override := os.Getenv("HR_TUI_LOG_FILE"); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "hr-tui", "hr-tui.log"), nil
}
