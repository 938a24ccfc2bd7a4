package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Snapshot is an immutable view of the catalog taken once per pipeline run so
// the whole ranking is computed against a consistent basis.
type Snapshot struct {
	Talents       *Talents
	Opportunities *Opportunities
}

type snapshotFile struct {
	Talents       []map[string]any `json:"talents"`
	Opportunities []map[string]any `json:"opportunities"`
}

// LoadSnapshot reads a catalog export produced by the persistence layer.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %q: %w", path, err)
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog file %q: %w", path, err)
	}

	var talents []*TalentProfile
	if err := decode(file.Talents, &talents); err != nil {
		return nil, fmt.Errorf("decoding talents: %w", err)
	}

	var opportunities []*Opportunity
	if err := decode(file.Opportunities, &opportunities); err != nil {
		return nil, fmt.Errorf("decoding opportunities: %w", err)
	}

	return &Snapshot{
		Talents:       &Talents{Items: talents},
		Opportunities: &Opportunities{Items: opportunities},
	}, nil
}

// decode maps loosely-typed records onto the catalog structs reusing their
// json tags, so the export format and the wire format stay in sync.
func decode(items any, result any) error {
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(items)
}

// Stats are aggregate counts over one snapshot. Availability is evaluated
// through the same classifier used by matching, keeping the counts consistent
// with the matching pools.
type Stats struct {
	TotalTalents       int `json:"total_talents"`
	AvailableTalents   int `json:"available_talents"`
	Prospects          int `json:"prospects"`
	ExistingEmployees  int `json:"existing_employees"`
	FullyUtilized      int `json:"fully_utilized"`
	TotalOpportunities int `json:"total_opportunities"`
	OpenOpportunities  int `json:"open_opportunities"`
}

func (s *Snapshot) Stats() *Stats {
	stats := &Stats{
		TotalTalents:       s.Talents.Len(),
		TotalOpportunities: s.Opportunities.Len(),
		OpenOpportunities:  s.Opportunities.Open().Len(),
	}

	for _, t := range s.Talents.Items {
		if t.IsAvailable() {
			stats.AvailableTalents++
		}
		if t.TalentType == TalentTypeProspect {
			stats.Prospects++
			continue
		}
		stats.ExistingEmployees++
		if t.Utilization() >= utilizationCap {
			stats.FullyUtilized++
		}
	}

	return stats
}

// Summary is the condensed catalog description sent to the AI classifier so
// the prompt stays small regardless of catalog size.
type Summary struct {
	Roles             []string `json:"roles"`
	Skills            []string `json:"skills"`
	TalentNames       []string `json:"talent_names"`
	OpportunityTitles []string `json:"opportunity_titles"`
}

// Summarize builds a Summary with at most maxSamples names and titles.
// Roles and skills are deduplicated preserving first-seen order.
func (s *Snapshot) Summarize(maxSamples int) *Summary {
	if maxSamples <= 0 {
		maxSamples = 20
	}

	summary := &Summary{}

	seenRoles := map[string]bool{}
	seenSkills := map[string]bool{}
	for _, t := range s.Talents.Items {
		if t.Role != "" && !seenRoles[t.Role] {
			seenRoles[t.Role] = true
			summary.Roles = append(summary.Roles, t.Role)
		}
		for _, skill := range t.Skills {
			if skill != "" && !seenSkills[skill] {
				seenSkills[skill] = true
				summary.Skills = append(summary.Skills, skill)
			}
		}
	}

	summary.TalentNames = firstN(s.Talents.Names(), maxSamples)
	summary.OpportunityTitles = firstN(s.Opportunities.Open().Titles(), maxSamples)

	return summary
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
