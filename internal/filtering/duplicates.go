package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/mkravets/voicehire/internal/catalog"
)

type duplicatesFilter struct{}

// NewDuplicates creates a filter that drops catalog entries with a repeated
// id, keeping the first occurrence. Exported snapshots occasionally contain
// the same record twice after a partial re-export.
func NewDuplicates() Filter {
	return &duplicatesFilter{}
}

func (f *duplicatesFilter) Name() string { return "duplicates" }

func (f *duplicatesFilter) Validate() error { return nil }

func (f *duplicatesFilter) Apply(_ context.Context, logger *zap.Logger, snapshot *catalog.Snapshot) (Step, error) {
	initial := snapshotSize(snapshot)

	duplicateTalents := dedupeTalents(snapshot.Talents)
	duplicateOpportunities := dedupeOpportunities(snapshot.Opportunities)

	if len(duplicateTalents) > 0 || len(duplicateOpportunities) > 0 {
		logger.Info("dropping duplicated catalog entries",
			zap.Strings("duplicate_talents", duplicateTalents),
			zap.Strings("duplicate_opportunities", duplicateOpportunities),
		)
	}

	dropped := len(duplicateTalents) + len(duplicateOpportunities)

	return Step{Initial: initial, Dropped: dropped, Left: initial - dropped}, nil
}

func dedupeTalents(talents *catalog.Talents) []string {
	seen := make(map[string]bool, talents.Len())
	var removed []string
	kept := make([]*catalog.TalentProfile, 0, talents.Len())
	for _, talent := range talents.Items {
		if talent.ID != "" && seen[talent.ID] {
			removed = append(removed, talent.Name)
			continue
		}
		seen[talent.ID] = true
		kept = append(kept, talent)
	}
	talents.Items = kept

	return removed
}

func dedupeOpportunities(opportunities *catalog.Opportunities) []string {
	seen := make(map[string]bool, opportunities.Len())
	var removed []string
	kept := make([]*catalog.Opportunity, 0, opportunities.Len())
	for _, opp := range opportunities.Items {
		if opp.ID != "" && seen[opp.ID] {
			removed = append(removed, opp.Title)
			continue
		}
		seen[opp.ID] = true
		kept = append(kept, opp)
	}
	opportunities.Items = kept

	return removed
}
