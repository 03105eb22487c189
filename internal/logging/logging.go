// Package logging points the global zerolog logger at a file. The terminal
// is in raw mode while editing, so logs never go to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup sends the global logger to path at the given level. An empty path
// disables logging. The returned closer flushes and closes the file.
func Setup(path string, level zerolog.Level) (io.Closer, error) {
	if path == "" {
		log.Logger = zerolog.Nop()
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	//nolint:gosec // G304: path comes from config
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log.Logger = zerolog.New(f).Level(level).With().Timestamp().Logger()
	return f, nil
}
