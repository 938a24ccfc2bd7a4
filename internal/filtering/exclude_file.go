package filtering

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/mkravets/voicehire/internal/catalog"
)

// ExcludedEntries is the schema of an exclude file: names of talents and
// titles of opportunities that must not participate in matching.
type ExcludedEntries struct {
	Talents       []string `json:"talents"`
	Opportunities []string `json:"opportunities"`
}

type excludeFileFilter struct {
	path    string
	entries *ExcludedEntries
}

// NewExcludeFile creates a filter that removes catalog entries listed in an
// exclude file. An empty path disables the filter.
func NewExcludeFile(path string) Filter {
	return &excludeFileFilter{path: strings.TrimSpace(path)}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate() error {
	if f.path == "" {
		return nil
	}

	entries, err := readExcludedEntries(f.path)
	if err != nil {
		return fmt.Errorf("reading exclude file: %w", err)
	}
	f.entries = entries

	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, logger *zap.Logger, snapshot *catalog.Snapshot) (Step, error) {
	initial := snapshotSize(snapshot)
	if f.entries == nil {
		return Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	removedTalents := excludeTalents(snapshot.Talents, f.entries.Talents)
	removedOpportunities := excludeOpportunities(snapshot.Opportunities, f.entries.Opportunities)

	if len(removedTalents) > 0 {
		logger.Info("excluding talents based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_talents", removedTalents),
			zap.Int("talents_left", snapshot.Talents.Len()),
		)
	}
	if len(removedOpportunities) > 0 {
		logger.Info("excluding opportunities based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_opportunities", removedOpportunities),
			zap.Int("opportunities_left", snapshot.Opportunities.Len()),
		)
	}

	dropped := len(removedTalents) + len(removedOpportunities)

	return Step{Initial: initial, Dropped: dropped, Left: initial - dropped}, nil
}

func readExcludedEntries(path string) (*ExcludedEntries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedEntries{}, nil
	}

	var entries ExcludedEntries
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		return nil, err
	}
	return &entries, nil
}

func excludeTalents(talents *catalog.Talents, names []string) []string {
	if len(names) == 0 {
		return nil
	}

	var removed []string
	kept := make([]*catalog.TalentProfile, 0, talents.Len())
	for _, talent := range talents.Items {
		if containsFold(names, talent.Name) {
			removed = append(removed, talent.Name)
			continue
		}
		kept = append(kept, talent)
	}
	talents.Items = kept

	return removed
}

func excludeOpportunities(opportunities *catalog.Opportunities, titles []string) []string {
	if len(titles) == 0 {
		return nil
	}

	var removed []string
	kept := make([]*catalog.Opportunity, 0, opportunities.Len())
	for _, opp := range opportunities.Items {
		if containsFold(titles, opp.Title) {
			removed = append(removed, opp.Title)
			continue
		}
		kept = append(kept, opp)
	}
	opportunities.Items = kept

	return removed
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), value) {
			return true
		}
	}
	return false
}
