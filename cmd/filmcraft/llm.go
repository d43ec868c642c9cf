package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"filmcraft/internal/config"
	"filmcraft/internal/llm"
)

func openInvoker(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (llm.Invoker, error) {
	key := cfg.APIKey()
	if key == "" {
		return nil, fmt.Errorf("%s is not set", cfg.APIKeyEnv)
	}
	switch cfg.Provider {
	case "gemini":
		gemini, err := llm.NewGemini(ctx, key, cfg.Model)
		if err != nil {
			return nil, err
		}
		return gemini, nil
	case "openai":
		return llm.NewClient(llm.Config{
			APIKey:         key,
			BaseURL:        cfg.BaseURL,
			Model:          cfg.Model,
			Referer:        cfg.Referer,
			Title:          cfg.Title,
			TimeoutSeconds: cfg.TimeoutSeconds,
		}, llm.WithLogger(logger.Named("llm"))), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
