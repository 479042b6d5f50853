package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/feather-lang/plist/format"
	"github.com/feather-lang/plist/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Explicit", func(t *testing.T) {
		path := writeConfig(t, "format: json\nindent: true\nlog_level: debug\n")
		cfg, err := config.Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if f, _ := cfg.OutputFormat(); f != format.JSON {
			t.Errorf("expected json, got %v", f)
		}
		if !cfg.Indent {
			t.Errorf("expected indent")
		}
		if l, _ := cfg.Level(); l != slog.LevelDebug {
			t.Errorf("expected debug, got %v", l)
		}
	})

	t.Run("Partial", func(t *testing.T) {
		path := writeConfig(t, "format: bin\n")
		cfg, err := config.Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.LogLevel != "warn" {
			t.Errorf("expected default log level, got %q", cfg.LogLevel)
		}
		if f, _ := cfg.OutputFormat(); f != format.Binary {
			t.Errorf("expected binary, got %v", f)
		}
	})

	t.Run("MissingExplicit", func(t *testing.T) {
		if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Errorf("expected error for missing explicit file")
		}
	})

	t.Run("MissingDefault", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, err := config.Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg != config.Default() {
			t.Errorf("expected defaults, got %+v", cfg)
		}
	})

	t.Run("DefaultPath", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		want := filepath.Join(dir, "plistutil", "config.yaml")
		if got := config.DefaultPath(); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
		if err := os.MkdirAll(filepath.Dir(want), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(want, []byte("format: openstep\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := config.Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Format != "openstep" {
			t.Errorf("expected openstep, got %q", cfg.Format)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"UnknownFormat", "format: yaml\n"},
		{"UnknownLevel", "log_level: loud\n"},
		{"Malformed", "format: [xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.Load(writeConfig(t, tt.body)); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}
