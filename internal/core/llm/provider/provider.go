package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/pdf-renamer/internal/common"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/llm"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/llm/anthropic"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/llm/gemini"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/llm/openai"
)

// NewCompleter builds the naming service selected by cfg.Provider.
func NewCompleter(ctx context.Context, cfg common.LLMConfig, logger *slog.Logger) (llm.Completer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("provider", cfg.Provider, "model", cfg.Model)

	switch cfg.Provider {
	case common.ProviderOpenAI, "":
		return openai.NewClient(openai.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}, logger)
	case common.ProviderAnthropic:
		return anthropic.NewClient(anthropic.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}, logger), nil
	case common.ProviderGemini:
		return gemini.NewClient(ctx, gemini.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}, logger)
	default:
		return nil, fmt.Errorf("%w: unknown naming provider %q", common.ErrInvalidInput, cfg.Provider)
	}
}
