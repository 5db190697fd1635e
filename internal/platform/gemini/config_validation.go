package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/foodbridge/match-api/internal/config"
	"github.com/foodbridge/match-api/internal/ranking"
)

// maxSafeTemperature is the highest sampling temperature accepted for ranking.
const maxSafeTemperature = 0.5

// validateConfig checks the settings the ranker cannot run without.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		logger.ErrorContext(ctx, "Missing Gemini API key", "error", "GeminiAPIKey is empty")
		return fmt.Errorf("%w: gemini API key cannot be empty", ranking.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		logger.ErrorContext(ctx, "Missing model name", "error", "ModelName is empty")
		return fmt.Errorf("%w: model name cannot be empty", ranking.ErrInvalidConfig)
	}

	if cfg.MaxOutputTokens <= 0 {
		return fmt.Errorf("%w: max output tokens must be positive, got %d",
			ranking.ErrInvalidConfig, cfg.MaxOutputTokens)
	}

	if cfg.Temperature < 0 || cfg.Temperature > maxSafeTemperature {
		return fmt.Errorf("%w: temperature %.2f outside [0, %.1f]",
			ranking.ErrInvalidConfig, cfg.Temperature, maxSafeTemperature)
	}

	return nil
}
