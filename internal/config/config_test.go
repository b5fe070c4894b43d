package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv guarantees the override variable is absent for the test and
// restored afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(envBaseURL, "")
	_ = os.Unsetenv(envBaseURL)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "" {
		t.Fatalf("BaseURL = %q, want empty default", cfg.BaseURL)
	}
}

func TestLoadParsesAndTrims(t *testing.T) {
	t.Chdir(t.TempDir())
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := "base_url = \"  https://notes.example.com  \"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "https://notes.example.com" {
		t.Fatalf("BaseURL = %q, want trimmed file value", cfg.BaseURL)
	}
}

func TestLoadInvalidTOMLFails(t *testing.T) {
	t.Chdir(t.TempDir())
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("base_url = [broken"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("Load returned nil error for invalid TOML")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("base_url = \"https://from-file\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(envBaseURL, "https://from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "https://from-env" {
		t.Fatalf("BaseURL = %q, want the environment override", cfg.BaseURL)
	}
}

func TestDotEnvFileProvidesOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	clearEnv(t)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(envBaseURL+"=https://from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "https://from-dotenv" {
		t.Fatalf("BaseURL = %q, want the .env value", cfg.BaseURL)
	}
}
