package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProjectConfig(t *testing.T) {
	t.Run("valid config loads", func(t *testing.T) {
		cfg, err := LoadProjectConfig(filepath.Join("testdata", "valid_config.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "test-project" {
			t.Fatalf("expected project name, got %q", cfg.Project)
		}
		if cfg.LLM.Model != "gpt-4o-mini" || cfg.LLM.APIKeyEnv != "FILMCRAFT_TEST_KEY" {
			t.Fatalf("unexpected llm config: %+v", cfg.LLM)
		}
		if cfg.Log.Level != "debug" {
			t.Fatalf("expected debug log level, got %q", cfg.Log.Level)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Database.Driver != DefaultDriver || cfg.Database.DSN != DefaultDSN {
			t.Fatalf("expected default database, got %+v", cfg.Database)
		}
		if cfg.Director.MaxIterations != 5 || cfg.Director.HistoryWindow != 20 || cfg.Director.BatchSize != 4 {
			t.Fatalf("unexpected director defaults: %+v", cfg.Director)
		}
		if cfg.LLM.Provider != "openai" || cfg.LLM.APIKeyEnv != DefaultAPIKeyEnv {
			t.Fatalf("unexpected llm defaults: %+v", cfg.LLM)
		}
	})

	t.Run("gemini defaults", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nllm:\n  provider: gemini\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.LLM.Model != DefaultGeminiModel || cfg.LLM.APIKeyEnv != DefaultGeminiKeyEnv {
			t.Fatalf("unexpected gemini defaults: %+v", cfg.LLM)
		}
	})

	t.Run("postgres requires dsn", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\ndatabase:\n  driver: postgres\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing project name", func(t *testing.T) {
		path := writeTempConfig(t, "version: 1\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 2\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\ndatabase:\n  driver: mysql\n  dsn: mysql://x\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nllm:\n  provider: llamafile\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("negative batch size", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\ndirector:\n  batch_size: -1\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad log level", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nlog:\n  level: chatty\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("file not found", func(t *testing.T) {
		if _, err := LoadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempConfig(t, "project: [\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestLLMConfigAPIKey(t *testing.T) {
	t.Setenv("FILMCRAFT_TEST_KEY", "  sk-test  ")
	cfg := LLMConfig{APIKeyEnv: "FILMCRAFT_TEST_KEY"}
	if got := cfg.APIKey(); got != "sk-test" {
		t.Fatalf("expected trimmed key, got %q", got)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Run("missing file skipped", func(t *testing.T) {
		if err := LoadEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("loads values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("FILMCRAFT_ENV_PROBE=loaded\n"), 0o600); err != nil {
			t.Fatalf("writing env file: %v", err)
		}
		t.Setenv("FILMCRAFT_ENV_PROBE", "")
		os.Unsetenv("FILMCRAFT_ENV_PROBE")

		if err := LoadEnv(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := os.Getenv("FILMCRAFT_ENV_PROBE"); got != "loaded" {
			t.Fatalf("expected loaded, got %q", got)
		}
	})
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "filmcraft.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
