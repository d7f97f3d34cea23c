package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 8787 {
		t.Errorf("default port = %d, want 8787", cfg.Server.Port)
	}
	if cfg.LLM.Provider != ProviderOpenAI {
		t.Errorf("default provider = %q, want openai", cfg.LLM.Provider)
	}
	if cfg.DBPath != "mydpo.db" {
		t.Errorf("default db_path = %q", cfg.DBPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mydpo.yml")

	original := DefaultConfig()
	original.Server.Port = 9090
	original.LLM.Provider = ProviderAnthropic
	original.LLM.Model = "claude-sonnet-4-5"
	original.DataDir = "/var/lib/mydpo"

	if err := original.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", loaded.Server.Port)
	}
	if loaded.LLM.Provider != ProviderAnthropic {
		t.Errorf("provider = %q, want anthropic", loaded.LLM.Provider)
	}
	if loaded.LLM.Model != "claude-sonnet-4-5" {
		t.Errorf("model = %q", loaded.LLM.Model)
	}
	if loaded.DataDir != "/var/lib/mydpo" {
		t.Errorf("data_dir = %q", loaded.DataDir)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("load should not fail for missing file: %v", err)
	}
	if cfg.Server.Port != 8787 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MYDPO_DB_PATH", "/tmp/override.db")
	t.Setenv("MYDPO_SERVER__PORT", "1234")

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/override.db" {
		t.Errorf("db_path = %q, env override ignored", cfg.DBPath)
	}
	if cfg.Server.Port != 1234 {
		t.Errorf("port = %d, env override ignored", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"empty db path", func(c *Config) { c.DBPath = "" }, true},
		{"bad port", func(c *Config) { c.Server.Port = -1 }, true},
		{"bad provider", func(c *Config) { c.LLM.Provider = "bard" }, true},
		{"bad embedding provider", func(c *Config) { c.LLM.EmbeddingProvider = "bard" }, true},
		{"negative rpm", func(c *Config) { c.LLM.RPM = -1 }, true},
		{"empty providers allowed", func(c *Config) { c.LLM.Provider = ""; c.LLM.EmbeddingProvider = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
