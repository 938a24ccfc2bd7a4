package scoring

import (
	"context"

	"go.uber.org/zap"

	"github.com/mkravets/voicehire/internal/catalog"
)

// Fallback tries the primary scorer and recovers with the fallback when the
// primary fails. Recovery is per pair: one unreachable or unparsable AI
// response downgrades that single pair, never the whole batch.
type Fallback struct {
	primary  Scorer
	fallback Scorer
	logger   *zap.Logger
}

func NewFallback(primary, fallback Scorer, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{primary: primary, fallback: fallback, logger: logger}
}

func (f *Fallback) Score(ctx context.Context, talent *catalog.TalentProfile, opportunity *catalog.Opportunity) (*MatchResult, error) {
	result, err := f.primary.Score(ctx, talent, opportunity)
	if err == nil {
		return result, nil
	}

	// A canceled pipeline is not a scoring failure; let the caller see it.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	f.logger.Warn("primary scorer failed, using rule-based fallback",
		zap.String("talent_id", talent.ID),
		zap.String("opportunity_id", opportunity.ID),
		zap.Error(err),
	)

	return f.fallback.Score(ctx, talent, opportunity)
}
