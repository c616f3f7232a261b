package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
storage:
  database_path: "test.db"
faq:
  threshold: 0.25
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Storage.DatabasePath == "" {
		t.Error("database_path should be set")
	}
	if cfg.FAQ.Threshold != 0.25 {
		t.Errorf("threshold = %v, want 0.25", cfg.FAQ.Threshold)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults: %+v", cfg.Server)
	}
	if cfg.FAQ.Threshold != 0.15 {
		t.Errorf("threshold default = %v, want 0.15", cfg.FAQ.Threshold)
	}
	if cfg.LLM.Model != "gemini-2.5-flash" {
		t.Errorf("llm model default = %q", cfg.LLM.Model)
	}
	if cfg.LLM.APIKeyEnv != "GEMINI_API_KEY" {
		t.Errorf("api_key_env default = %q", cfg.LLM.APIKeyEnv)
	}
	if cfg.LLM.Enabled {
		t.Error("llm should be disabled by default")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
storage:
  database_path: "./data/faqs.db"
faq:
  sources:
    - "./faqs.txt"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	wantDB := filepath.Join(dir, "data/faqs.db")
	if cfg.Storage.DatabasePath != wantDB {
		t.Errorf("database_path = %q, want %q", cfg.Storage.DatabasePath, wantDB)
	}
	wantSrc := filepath.Join(dir, "faqs.txt")
	if len(cfg.FAQ.Sources) != 1 || cfg.FAQ.Sources[0] != wantSrc {
		t.Errorf("sources = %v, want [%q]", cfg.FAQ.Sources, wantSrc)
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoad_invalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for invalid yaml")
	}
}

func TestSave_roundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := &Config{Debug: true}
	ApplyDefaults(cfg)
	cfg.FAQ.Threshold = 0.3
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Debug || loaded.FAQ.Threshold != 0.3 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}
