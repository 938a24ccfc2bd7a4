// Package intent turns a free-text command transcript into a structured
// action the pipeline can execute. Classification is pluggable: an AI provider
// can do it, and a deterministic rule cascade always can.
package intent

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mkravets/voicehire/internal/catalog"
)

// Action is the structured operation extracted from a transcript.
type Action string

const (
	ActionFindTalents               Action = "find_talents"
	ActionFindOpportunities         Action = "find_opportunities"
	ActionShowTalentProfile         Action = "show_talent_profile"
	ActionMatchTalentToOpportunity  Action = "match_talent_to_opportunity"
	ActionMatchOpportunityToTalents Action = "match_opportunity_to_talents"
	ActionShowStats                 Action = "show_stats"
)

// ErrUnrecognized is returned when no strategy can make sense of the
// transcript, including the keyword last resort.
var ErrUnrecognized = errors.New("command not understood")

// ParseAction validates an action string coming from an external classifier.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionFindTalents, ActionFindOpportunities, ActionShowTalentProfile,
		ActionMatchTalentToOpportunity, ActionMatchOpportunityToTalents, ActionShowStats:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Filters carries the entity and constraint fragments extracted from the
// transcript. Zero values mean "not specified".
type Filters struct {
	Skills           []string `json:"skills,omitempty"`
	Role             string   `json:"role,omitempty"`
	ExperienceMin    int      `json:"experience_min,omitempty"`
	TalentName       string   `json:"talent_name,omitempty"`
	OpportunityTitle string   `json:"opportunity_title,omitempty"`
	Location         string   `json:"location,omitempty"`

	// Keywords are raw transcript words used by the keyword-overlap last
	// resort when no structured signal was found.
	Keywords []string `json:"keywords,omitempty"`
}

// Intent is the classification result for one command. Ephemeral, one per
// transcript.
type Intent struct {
	Action     Action  `json:"action"`
	Filters    Filters `json:"filters"`
	Response   string  `json:"response,omitempty"`
	Confidence float64 `json:"confidence"`

	// Source names the strategy that produced the intent ("ai" or "rules").
	Source string `json:"source,omitempty"`

	// LimitResults caps the ranked result set when positive.
	LimitResults int `json:"-"`
}

// Resolver classifies one transcript against the current catalog snapshot.
type Resolver interface {
	Resolve(ctx context.Context, transcript string, snapshot *catalog.Snapshot) (*Intent, error)
}

// FallbackResolver tries the primary resolver and recovers with the fallback
// on any classification error. The rule-based fallback keeps the engine
// working with zero network dependency.
type FallbackResolver struct {
	primary  Resolver
	fallback Resolver
	logger   *zap.Logger
}

func NewFallbackResolver(primary, fallback Resolver, logger *zap.Logger) *FallbackResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackResolver{primary: primary, fallback: fallback, logger: logger}
}

func (r *FallbackResolver) Resolve(ctx context.Context, transcript string, snapshot *catalog.Snapshot) (*Intent, error) {
	result, err := r.primary.Resolve(ctx, transcript, snapshot)
	if err == nil {
		return result, nil
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// The rule resolver reports ErrUnrecognized itself; re-running it would
	// not change the outcome.
	if errors.Is(err, ErrUnrecognized) {
		return nil, err
	}

	r.logger.Warn("classification failed, using rule-based resolver", zap.Error(err))
	return r.fallback.Resolve(ctx, transcript, snapshot)
}
