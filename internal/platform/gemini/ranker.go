package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foodbridge/match-api/internal/config"
	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/platform/logger"
	"github.com/foodbridge/match-api/internal/ranking"
	"google.golang.org/genai"
)

// Ranker implements the ranking.Oracle interface using the Gemini API.
type Ranker struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

var _ ranking.Oracle = (*Ranker)(nil)

// NewRanker creates a Ranker. When cfg.BaseURL is set, requests go to that
// endpoint instead of the public API.
func NewRanker(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Ranker, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	logger = logger.With("component", "gemini_ranker")

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", ranking.ErrInvalidConfig, err)
	}

	return &Ranker{
		logger: logger,
		config: cfg,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

func (r *Ranker) generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(ranking.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(r.config.Temperature),
		MaxOutputTokens:   r.config.MaxOutputTokens,
		ResponseMIMEType:  "application/json",
	}
}

// Rank implements ranking.Oracle.
func (r *Ranker) Rank(ctx context.Context, req ranking.Request) ([]domain.Recommendation, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	prompt, err := ranking.BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	log.DebugContext(ctx, "Making Gemini API call",
		"model", r.model,
		"candidates", len(req.Candidates),
		"prompt_length", len(prompt))

	resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(prompt), r.generateConfig())
	if err != nil {
		log.ErrorContext(ctx, "Gemini API call failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("%w: %v", ranking.ErrOracleUnavailable, err)
	}

	if resp == nil {
		log.WarnContext(ctx, "Gemini returned no response object")
		return []domain.Recommendation{}, nil
	}
	// Safety blocks rank nobody.
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		log.WarnContext(ctx, "Gemini blocked the prompt",
			"block_reason", string(resp.PromptFeedback.BlockReason))
		return []domain.Recommendation{}, nil
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		log.WarnContext(ctx, "Gemini answer stopped by safety filters")
		return []domain.Recommendation{}, nil
	}

	text := resp.Text()
	recs := ranking.ParseRecommendations(text, req.Candidates, ranking.MaxRecommendations)
	if len(recs) == 0 && text != "" && text != "[]" {
		log.WarnContext(ctx, "Gemini answer yielded no usable recommendations",
			"response_length", len(text))
	}

	log.InfoContext(ctx, "Gemini API call successful",
		"recommendations", len(recs),
		"duration_ms", time.Since(start).Milliseconds())
	return recs, nil
}
