package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/mkravets/voicehire/internal/catalog"
	"github.com/mkravets/voicehire/internal/intent"
	"github.com/mkravets/voicehire/internal/util"
)

//go:embed classifier_prompt.md
var classifierPrompt string

const (
	defaultMaxLogLength = 200
	summarySampleSize   = 20
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// summaryCacher is implemented by generators that can pin the catalog summary
// in a server-side cached content resource.
type summaryCacher interface {
	EnsureSummaryCache(ctx context.Context, payload string) (string, error)
	GenerateContentWithCache(ctx context.Context, prompt, cacheName string) (string, error)
}

// Classifier maps transcripts to intents via Gemini. It implements
// intent.Resolver; callers wrap it with the rule-based fallback.
type Classifier struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewClassifier(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Classifier {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Classifier{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (c *Classifier) Resolve(ctx context.Context, transcript string, snapshot *catalog.Snapshot) (*intent.Intent, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, fmt.Errorf("transcript is required")
	}

	summaryJSON, err := json.MarshalIndent(snapshot.Summarize(summarySampleSize), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal catalog summary: %w", err)
	}

	raw, err := c.generate(ctx, transcript, string(summaryJSON))
	if err != nil {
		return nil, err
	}

	c.logger.Debug("gemini classify response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, c.maxLogLen)),
	)

	return parseClassification(raw)
}

// generate builds the classification prompt and sends it. When the generator
// can cache the catalog summary server-side, the summary travels once per
// snapshot instead of once per command; any cache trouble falls back to the
// inline prompt.
func (c *Classifier) generate(ctx context.Context, transcript, summaryJSON string) (string, error) {
	c.logger.Debug("gemini classify request",
		zap.String("transcript", util.TruncateForLog(transcript, c.maxLogLen)),
	)

	if cacher, ok := c.generator.(summaryCacher); ok {
		cacheName, err := cacher.EnsureSummaryCache(ctx, summaryJSON)
		if err == nil {
			prompt := strings.ReplaceAll(classifierPrompt, "{{CATALOG_SUMMARY}}", "(catalog summary provided in cached context)")
			prompt = strings.ReplaceAll(prompt, "{{TRANSCRIPT}}", transcript)
			return cacher.GenerateContentWithCache(ctx, prompt, cacheName)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		c.logger.Debug("catalog summary cache unavailable, sending summary inline", zap.Error(err))
	}

	prompt := strings.ReplaceAll(classifierPrompt, "{{CATALOG_SUMMARY}}", summaryJSON)
	prompt = strings.ReplaceAll(prompt, "{{TRANSCRIPT}}", transcript)

	c.logger.Debug("gemini classify prompt built",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	return c.generator.GenerateContent(ctx, prompt)
}

func parseClassification(raw string) (*intent.Intent, error) {
	data, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	action, err := intent.ParseAction(coerceString(data["action"]))
	if err != nil {
		return nil, err
	}

	confidence := coerceFloat(data["confidence"])
	if math.IsNaN(confidence) {
		confidence = 0
	}

	result := &intent.Intent{
		Action:     action,
		Response:   coerceString(data["response"]),
		Confidence: confidence,
		Source:     "ai",
	}

	if filters, ok := data["filters"].(map[string]any); ok {
		result.Filters = intent.Filters{
			Skills:           coerceStringSlice(filters["skills"]),
			Role:             coerceString(filters["role"]),
			TalentName:       coerceString(filters["talent_name"]),
			OpportunityTitle: coerceString(filters["opportunity_title"]),
			Location:         coerceString(filters["location"]),
		}
		if years := coerceFloat(filters["experience_min"]); !math.IsNaN(years) && years > 0 {
			result.Filters.ExperienceMin = int(years)
		}
	}

	return result, nil
}
