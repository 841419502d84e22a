package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-schemaform/internal/config"
)

func TestNew_ConsoleLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(config.LogConfig{Level: "warn"}, &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer closer.Close()

	logger.Info().Msg("hidden")
	logger.Warn().Str("field", "Body").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "field=Body") {
		t.Fatalf("expected console output, got %q", out)
	}
}

func TestNew_JSONWithFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "schemaform.log")
	logger, closer, err := New(config.LogConfig{Level: "debug", Format: "json", File: path, MaxSizeMB: 1}, &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	logger.Debug().Msg("decoded definition")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if !strings.Contains(buf.String(), `"message":"decoded definition"`) {
		t.Fatalf("expected json output, got %q", buf.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "decoded definition") {
		t.Fatalf("expected log file entry, got %q", data)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, _, err := New(config.LogConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, _, err := New(config.LogConfig{Level: "info", Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestParseLevel_Disabled(t *testing.T) {
	for _, raw := range []string{"", "off", "Disabled"} {
		level, err := parseLevel(raw)
		if err != nil || level != zerolog.Disabled {
			t.Fatalf("parseLevel(%q) = %v, %v", raw, level, err)
		}
	}
}
