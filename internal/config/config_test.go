package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 37707 {
		t.Errorf("port = %d, want 37707", cfg.Server.Port)
	}
	if cfg.ListenAddr() != "127.0.0.1:37707" {
		t.Errorf("addr = %s", cfg.ListenAddr())
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[server]
port = 9999

[import]
inbox = "/tmp/tend-inbox"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Server.Bind != "127.0.0.1" {
		t.Errorf("bind = %s, want default kept", cfg.Server.Bind)
	}
	if cfg.Import.Inbox != "/tmp/tend-inbox" {
		t.Errorf("inbox = %s", cfg.Import.Inbox)
	}
}

func TestLoadBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("not [valid"), 0644)

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
