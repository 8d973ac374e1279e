package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:8080" {
		t.Errorf("Expected loopback default address, got %s", cfg.Addr())
	}
	if cfg.Import.DefaultSemester != 1 || cfg.Import.DefaultYear != 2024 || !cfg.Seed.Enabled {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.MaxUploadBytes() != 10<<20 {
		t.Errorf("Unexpected upload limit: %d", cfg.MaxUploadBytes())
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
  mode: production
import:
  default_semester: 2
  default_year: 2025
seed:
  enabled: false
`)
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("IMPORT_DEFAULT_YEAR", "2026")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("Environment must override the file, got port %s", cfg.Server.Port)
	}
	if cfg.Server.Mode != "production" || cfg.Import.DefaultSemester != 2 || cfg.Import.DefaultYear != 2026 || cfg.Seed.Enabled {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{"Unknown mode", "server:\n  mode: staging\n", nil, "unknown server mode"},
		{"Zero semester", "import:\n  default_semester: 0\n", nil, "default semester"},
		{"Bad env integer", "", map[string]string{"SERVER_MAX_UPLOAD_MB": "lots"}, "invalid integer"},
		{"Broken yaml", "server: [", nil, "failed to parse config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	for in, want := range map[string]bool{"yes": true, "OFF": false, "1": true, "false": false} {
		got, err := parseBool(in)
		if err != nil || got != want {
			t.Errorf("parseBool(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := parseBool("maybe"); err == nil {
		t.Error("Expected an error for an unknown boolean")
	}
}
