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
	"github.com/mkravets/voicehire/internal/scoring"
	"github.com/mkravets/voicehire/internal/util"
)

//go:embed scorer_prompt.md
var scorerPrompt string

// Scorer delegates pair scoring to Gemini. It implements scoring.Scorer;
// callers wrap it with scoring.Fallback so one bad response never fails a
// batch.
type Scorer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewScorer(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scorer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (s *Scorer) Score(ctx context.Context, talent *catalog.TalentProfile, opportunity *catalog.Opportunity) (*scoring.MatchResult, error) {
	if talent == nil {
		return nil, fmt.Errorf("talent is required")
	}
	if opportunity == nil {
		return nil, fmt.Errorf("opportunity is required")
	}

	talentJSON, err := json.MarshalIndent(talent, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal talent payload: %w", err)
	}

	opportunityJSON, err := json.MarshalIndent(opportunity, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal opportunity payload: %w", err)
	}

	prompt := strings.ReplaceAll(scorerPrompt, "{{TALENT_JSON}}", string(talentJSON))
	prompt = strings.ReplaceAll(prompt, "{{OPPORTUNITY_JSON}}", string(opportunityJSON))

	s.logger.Debug("gemini score request",
		zap.String("talent_id", talent.ID),
		zap.String("opportunity_id", opportunity.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini score response",
		zap.String("talent_id", talent.ID),
		zap.String("opportunity_id", opportunity.ID),
		zap.String("response_preview", util.TruncateForLog(raw, s.maxLogLen)),
	)

	return parseScore(raw)
}

func parseScore(raw string) (*scoring.MatchResult, error) {
	data, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) {
		return nil, fmt.Errorf("gemini response is missing a numeric score")
	}

	rounded := int(math.Round(score))
	if rounded < 0 {
		rounded = 0
	}
	if rounded > 100 {
		rounded = 100
	}

	return &scoring.MatchResult{
		Score:       rounded,
		Explanation: coerceString(data["explanation"]),
	}, nil
}
