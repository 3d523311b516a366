package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"shifttrack/internal/config"
)

func TestLoadDefaultConfigExpandsPathsAndEnvToken(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("SHIFTTRACK_API_TOKEN", "env-token")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "shifttrack")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.DatabasePath != filepath.Join(wantData, "shifttrack.db") {
		t.Fatalf("unexpected database path: %q", cfg.Paths.DatabasePath)
	}
	if cfg.Paths.APIBind != "127.0.0.1:7493" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Paths.APIToken != "env-token" {
		t.Fatalf("expected API token from env, got %q", cfg.Paths.APIToken)
	}
	if cfg.Wages.Currency != "USD" {
		t.Fatalf("unexpected currency: %q", cfg.Wages.Currency)
	}
	if cfg.Wages.DefaultRate != 0 {
		t.Fatalf("unexpected default rate: %v", cfg.Wages.DefaultRate)
	}
	if cfg.PdftotextBinary() != "pdftotext" {
		t.Fatalf("unexpected pdftotext binary: %q", cfg.PdftotextBinary())
	}
	if !cfg.Notifications.Shifts || !cfg.Notifications.Audit || !cfg.Notifications.Errors {
		t.Fatal("expected notification toggles enabled by default")
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "shifttrack.toml")

	type payload struct {
		Paths struct {
			APIBind string `toml:"api_bind"`
		} `toml:"paths"`
		Wages struct {
			DefaultRate float64 `toml:"default_rate"`
			Currency    string  `toml:"currency"`
		} `toml:"wages"`
		Audit struct {
			PdftotextBinary string `toml:"pdftotext_binary"`
			ExtractTimeout  int    `toml:"extract_timeout"`
		} `toml:"audit"`
	}
	custom := payload{}
	custom.Paths.APIBind = "0.0.0.0:9000"
	custom.Wages.DefaultRate = 17.25
	custom.Wages.Currency = "eur"
	custom.Audit.PdftotextBinary = "/opt/poppler/bin/pdftotext"
	custom.Audit.ExtractTimeout = 45
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.APIBind != "0.0.0.0:9000" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Wages.DefaultRate != 17.25 {
		t.Fatalf("unexpected default rate: %v", cfg.Wages.DefaultRate)
	}
	if cfg.Wages.Currency != "EUR" {
		t.Fatalf("expected currency normalized to EUR, got %q", cfg.Wages.Currency)
	}
	if cfg.PdftotextBinary() != "/opt/poppler/bin/pdftotext" {
		t.Fatalf("unexpected pdftotext binary: %q", cfg.PdftotextBinary())
	}
	if cfg.Audit.ExtractTimeout != 45 {
		t.Fatalf("unexpected extract timeout: %d", cfg.Audit.ExtractTimeout)
	}
}

func TestNtfyTopicEnvFallback(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("NTFY_TOPIC", "shifttrack-alerts")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Notifications.NtfyTopic != "shifttrack-alerts" {
		t.Fatalf("expected ntfy topic from env, got %q", cfg.Notifications.NtfyTopic)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "default_rate") {
		t.Fatalf("sample config missing wages section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Paths.APIBind != "127.0.0.1:7493" {
		t.Fatalf("sample api bind mismatch: %q", cfg.Paths.APIBind)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Wages.DefaultRate = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative default rate")
	}

	cfg = config.Default()
	cfg.Wages.Currency = "DOLLARS"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for malformed currency code")
	}

	cfg = config.Default()
	cfg.Audit.ExtractTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive extract timeout")
	}

	cfg = config.Default()
	cfg.Notifications.DedupWindowSeconds = -5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative dedup window")
	}
}

func TestLoggingFormatFallsBackToConsole(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "shifttrack.toml")
	body := "[logging]\nformat = \"xml\"\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected unknown format to fall back to console, got %q", cfg.Logging.Format)
	}
}
