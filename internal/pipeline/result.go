package pipeline

import (
	"encoding/json"
	"os"

	"github.com/mkravets/voicehire/internal/catalog"
	"github.com/mkravets/voicehire/internal/intent"
)

// Kind tells the caller which entity type the ranked list contains.
type Kind string

const (
	KindTalents       Kind = "talents"
	KindOpportunities Kind = "opportunities"
)

// Match pairs one catalog entity with its score and explanation. Exactly one
// of Talent/Opportunity is set, matching the result kind.
type Match struct {
	Talent      *catalog.TalentProfile `json:"talent,omitempty"`
	Opportunity *catalog.Opportunity   `json:"opportunity,omitempty"`
	Score       int                    `json:"score"`
	Explanation string                 `json:"explanation"`
}

// Result is the final outcome of one pipeline run. Ephemeral, never persisted.
type Result struct {
	Kind    Kind           `json:"kind"`
	Matches []*Match       `json:"matches"`
	Stats   *catalog.Stats `json:"stats,omitempty"`
	Message string         `json:"message,omitempty"`
	Intent  *intent.Intent `json:"intent,omitempty"`
}

func (r *Result) Len() int {
	return len(r.Matches)
}

// DumpToTmpFile writes the ranked result set to a temp JSON file for
// inspection.
func (r *Result) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "voicehire_result_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
