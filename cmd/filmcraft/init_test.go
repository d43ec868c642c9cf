package main

import (
	"path/filepath"
	"testing"

	"filmcraft/internal/config"
)

func TestRunInitWritesLoadableConfig(t *testing.T) {
	dir := t.TempDir()
	path, err := runInit(dir, "Night Shift", "gemini")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, defaultConfigPath) {
		t.Fatalf("unexpected path %q", path)
	}

	cfg, err := config.LoadProjectConfig(path)
	if err != nil {
		t.Fatalf("scaffolded config does not load: %v", err)
	}
	if cfg.Project != "Night Shift" || cfg.LLM.Provider != "gemini" || cfg.LLM.Model != config.DefaultGeminiModel {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Director.MaxIterations != config.DefaultMaxIterations {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	if _, err := runInit(dir, "Again", "openai"); err == nil {
		t.Fatalf("expected error when config already exists")
	}
}

func TestRunInitRejectsUnknownProvider(t *testing.T) {
	if _, err := runInit(t.TempDir(), "x", "llama"); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
