package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// New creates the application logger. Logs are written to a file because the terminal is owned by
// the TUI; the returned closer releases the file. An empty path discards all logs.
func New(level, path string) (*slog.Logger, io.Closer, error) {
	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	var out io.WriteCloser = nopCloser{io.Discard}
	if path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening log file: %w", err)
		}
		out = file
	}

	// Create a charm handler that writes to the file
	handler := charmlog.NewWithOptions(out, charmlog.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Prefix:          "f1results",
	})

	return slog.New(handler), out, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
