package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(prev)
	})
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		Log:    LogConfig{Level: "warn", Format: "console", MaxSizeMB: 10, MaxBackups: 3},
		Input:  InputConfig{Timeout: 10 * time.Second},
		Output: OutputConfig{Indent: "  "},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	payload := []byte(`
log:
  level: debug
  format: json
input:
  allow_http: true
  timeout: 3s
output:
  indent: "\t"
`)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SCHEMAFORM_LOG_LEVEL", "error")

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Fatalf("expected env to override file level, got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" || !cfg.Input.AllowHTTP || cfg.Input.Timeout != 3*time.Second {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Output.Indent != "\t" {
		t.Fatalf("expected tab indent, got %q", cfg.Output.Indent)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoad_SearchPath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	if err := os.WriteFile(filepath.Join(dir, "schemaform.yaml"), []byte("log:\n  format: json\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	v := viper.New()
	cfg, err := Load(v, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Format != "json" {
		t.Fatalf("expected config from working directory, got %+v", cfg.Log)
	}
	if v.ConfigFileUsed() == "" {
		t.Fatalf("expected viper to report the file used")
	}
}
