package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"filmcraft/internal/config"
)

const configTemplate = `project: %s
version: 1

database:
  driver: sqlite
  dsn: sqlite://filmcraft.db

llm:
  provider: %s
  model: %s
  api_key_env: %s
  timeout_seconds: 60

director:
  max_iterations: %d
  history_window: %d
  batch_size: %d

log:
  level: info
`

func initCmd() *cobra.Command {
	var projectName string
	var provider string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a filmcraft.yaml in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			path, err := runInit(".", projectName, provider)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s. Run `filmcraft db migrate` next.\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().StringVar(&provider, "provider", config.DefaultProvider, "LLM provider: openai or gemini")
	return cmd
}

func runInit(dir, projectName, provider string) (string, error) {
	path := filepath.Join(dir, defaultConfigPath)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}

	model, keyEnv := config.DefaultModel, config.DefaultAPIKeyEnv
	switch provider {
	case "openai":
	case "gemini":
		model, keyEnv = config.DefaultGeminiModel, config.DefaultGeminiKeyEnv
	default:
		return "", fmt.Errorf("unsupported llm provider: %s", provider)
	}

	contents := fmt.Sprintf(configTemplate, projectName, provider, model, keyEnv,
		config.DefaultMaxIterations, config.DefaultHistoryWindow, config.DefaultBatchSize)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
