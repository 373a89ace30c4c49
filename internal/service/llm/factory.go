package llm

import (
	"fmt"
	"log/slog"

	"inkwell/internal/config"
)

// SetupProvider builds the configured LLM provider. Returns nil (no error)
// when no credentials are present: generation endpoints check for a nil
// provider and fail fast with a configuration error, while the rest of
// the application keeps working.
func SetupProvider(cfg *config.Config, logger *slog.Logger) (Provider, error) {
	switch cfg.DefaultProvider {
	case "openai", "":
		if cfg.OpenAIAPIKey == "" {
			logger.Warn("no OpenAI API key configured, generation disabled")
			return nil, nil
		}
		provider, err := NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("create openai provider: %w", err)
		}
		logger.Info("llm provider ready", "provider", provider.Name(), "model", cfg.DefaultModel)
		return provider, nil

	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			logger.Warn("no Anthropic API key configured, generation disabled")
			return nil, nil
		}
		provider, err := NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("create anthropic provider: %w", err)
		}
		logger.Info("llm provider ready", "provider", provider.Name(), "model", cfg.DefaultModel)
		return provider, nil

	case "canned":
		// No API key needed; fixed responses for local development
		logger.Warn("canned llm provider enabled, responses are placeholders")
		return &CannedProvider{}, nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.DefaultProvider)
	}
}
