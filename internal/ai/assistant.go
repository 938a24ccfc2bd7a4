// Package ai selects and assembles the external AI provider behind the narrow
// classify/score interfaces, so rule-based paths and tests can substitute it
// without touching pipeline logic.
package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mkravets/voicehire/internal/ai/gemini"
	"github.com/mkravets/voicehire/internal/intent"
	"github.com/mkravets/voicehire/internal/logger"
	"github.com/mkravets/voicehire/internal/scoring"
)

// Config selects the provider and carries its settings.
type Config struct {
	Provider string
	Gemini   *GeminiConfig
}

// GeminiConfig stores Gemini provider configuration.
type GeminiConfig struct {
	APIKey       string
	Model        string
	MaxRetries   int
	MaxLogLength int
}

// Assistant bundles the AI-backed strategies one provider supplies.
type Assistant struct {
	Classifier intent.Resolver
	Scorer     scoring.Scorer
}

// New builds the provider named in the config. Only Gemini is supported.
func New(ctx context.Context, cfg *Config, log *zap.Logger) (*Assistant, error) {
	if cfg == nil {
		return nil, fmt.Errorf("ai configuration is required")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required")
	}

	providerLogger := logger.WithCommonFields(log, "gemini", cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, providerLogger)
	if err != nil {
		return nil, err
	}

	return &Assistant{
		Classifier: gemini.NewClassifier(generator, providerLogger, cfg.Gemini.MaxLogLength),
		Scorer:     gemini.NewScorer(generator, providerLogger, cfg.Gemini.MaxLogLength),
	}, nil
}
