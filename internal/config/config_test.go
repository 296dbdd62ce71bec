package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Generator.MaxCount != 10000000 {
		t.Errorf("MaxCount = %d, want 10000000", cfg.Generator.MaxCount)
	}
	if cfg.Generator.FileSizeLimitMB != 20 {
		t.Errorf("FileSizeLimitMB = %d, want 20", cfg.Generator.FileSizeLimitMB)
	}
	if cfg.Download.ExpireHours != 24 {
		t.Errorf("ExpireHours = %d, want 24", cfg.Download.ExpireHours)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Login.Enabled {
		t.Error("login should be disabled by default")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Generator.MaxCount != 10000000 {
		t.Errorf("MaxCount = %d, want default", cfg.Generator.MaxCount)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  port: 8080
generator:
  max_count: 500
login:
  enabled: true
  users:
    - username: ops
      password: secret
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Generator.MaxCount != 500 {
		t.Errorf("MaxCount = %d, want 500", cfg.Generator.MaxCount)
	}
	// Untouched sections keep defaults.
	if cfg.Download.ExpireHours != 24 {
		t.Errorf("ExpireHours = %d, want 24", cfg.Download.ExpireHours)
	}
	if !cfg.ValidateLogin("ops", "secret") {
		t.Error("configured credentials rejected")
	}
	if cfg.ValidateLogin("ops", "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PHONEGEN_PORT", "9000")
	t.Setenv("PHONEGEN_LOGIN_ENABLED", "true")
	t.Setenv("PHONEGEN_DEBUG", "yes")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	if !cfg.Login.Enabled {
		t.Error("PHONEGEN_LOGIN_ENABLED not applied")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	orig := Default()
	orig.Server.Port = 7777
	if err := orig.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Server.Port != 7777 {
		t.Errorf("Port = %d, want 7777", loaded.Server.Port)
	}
}

func TestPartitionSizeLimit(t *testing.T) {
	cfg := Default()
	if got := cfg.PartitionSizeLimit(); got != 20*1024*1024 {
		t.Errorf("PartitionSizeLimit = %d, want %d", got, 20*1024*1024)
	}
}
