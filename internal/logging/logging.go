// Package logging builds the zerolog logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/goliatone/go-schemaform/internal/config"
)

// New returns a logger writing to out (console or JSON) and, when cfg.File is
// set, also to a size-rotated log file. The returned closer releases the file.
func New(cfg config.LogConfig, out io.Writer) (zerolog.Logger, io.Closer, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var console io.Writer
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console", "text":
		console = zerolog.ConsoleWriter{Out: out, NoColor: true}
	case "json":
		console = out
	default:
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}

	writers := []io.Writer{console}
	var closer io.Closer = nopCloser{}
	if path := strings.TrimSpace(cfg.File); path != "" {
		rotating := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		writers = append(writers, rotating)
		closer = rotating
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()
	return logger, closer, nil
}

func parseLevel(raw string) (zerolog.Level, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "disabled", "off":
		return zerolog.Disabled, nil
	}
	level, err := zerolog.ParseLevel(value)
	if err != nil {
		return zerolog.Disabled, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
