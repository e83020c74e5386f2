package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_ENV", "nope")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Port)
	}
	if cfg.TypingTTL != 3*time.Second {
		t.Errorf("default typing_ttl = %s, want 3s", cfg.TypingTTL)
	}
	if cfg.SendBuffer != 32 {
		t.Errorf("default send_buffer = %d, want 32", cfg.SendBuffer)
	}
	if cfg.MsgRateLimit != 20 {
		t.Errorf("default msg_rate_limit = %d, want 20", cfg.MsgRateLimit)
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_ENV", "test")

	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "mode: debug\nport: 9191\ntyping_ttl: 750ms\n"
	if err := os.WriteFile(filepath.Join(dir, "config", "config.test.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Mode != "debug" {
		t.Errorf("mode = %q, want debug", cfg.Mode)
	}
	if cfg.Port != 9191 {
		t.Errorf("port = %d, want 9191", cfg.Port)
	}
	if cfg.TypingTTL != 750*time.Millisecond {
		t.Errorf("typing_ttl = %s, want 750ms", cfg.TypingTTL)
	}
	// Unset keys still fall back to defaults.
	if cfg.PingPeriod != 54*time.Second {
		t.Errorf("ping_period = %s, want default 54s", cfg.PingPeriod)
	}
}
