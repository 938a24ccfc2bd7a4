// Package scoring computes compatibility between one talent profile and one
// opportunity. The rule-based scorer is the always-available baseline; an AI
// provider can be layered on top with per-pair fallback so a flaky provider
// never fails a whole batch.
package scoring

import (
	"context"

	"github.com/mkravets/voicehire/internal/catalog"
)

// Mode selects how pairs are scored.
type Mode string

const (
	ModeRuleBased  Mode = "rule_based"
	ModeAIAssisted Mode = "ai_assisted"
)

// MatchResult pairs a 0-100 compatibility score with a human-readable
// explanation of the contributing factors. Results are built fresh per query
// and never persisted.
type MatchResult struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// Scorer evaluates a single talent/opportunity pair.
type Scorer interface {
	Score(ctx context.Context, talent *catalog.TalentProfile, opportunity *catalog.Opportunity) (*MatchResult, error)
}
