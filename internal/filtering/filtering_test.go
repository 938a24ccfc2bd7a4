package filtering

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mkravets/voicehire/internal/catalog"
)

func filterSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Talents: &catalog.Talents{Items: []*catalog.TalentProfile{
			{ID: "t-1", Name: "Fijula Rao"},
			{ID: "t-2", Name: "Ananya Sharma"},
			{ID: "t-1", Name: "Fijula Rao"},
		}},
		Opportunities: &catalog.Opportunities{Items: []*catalog.Opportunity{
			{ID: "o-1", Title: "Frontend Dashboard", Status: catalog.OpportunityOpen},
			{ID: "o-1", Title: "Frontend Dashboard", Status: catalog.OpportunityOpen},
			{ID: "o-2", Title: "Data Platform", Status: catalog.OpportunityOpen},
		}},
	}
}

func TestDuplicatesFilter(t *testing.T) {
	snapshot := filterSnapshot()

	step, err := NewDuplicates().Apply(context.Background(), zap.NewNop(), snapshot)
	require.NoError(t, err)

	assert.Equal(t, Step{Initial: 6, Dropped: 2, Left: 4}, step)
	assert.Equal(t, []string{"Fijula Rao", "Ananya Sharma"}, snapshot.Talents.Names())
	assert.Equal(t, []string{"Frontend Dashboard", "Data Platform"}, snapshot.Opportunities.Titles())
}

func TestExcludeFileFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"talents": ["ananya sharma"],
		"opportunities": ["Data Platform"]
	}`), 0o600))

	snapshot := filterSnapshot()
	filter := NewExcludeFile(path)
	require.NoError(t, filter.Validate())

	step, err := filter.Apply(context.Background(), zap.NewNop(), snapshot)
	require.NoError(t, err)

	assert.Equal(t, 2, step.Dropped)
	assert.Nil(t, snapshot.Talents.FindByName("Ananya Sharma"))
	assert.Nil(t, snapshot.Opportunities.FindByTitle("Data Platform"))
}

func TestExcludeFileFilterEmptyPathIsNoop(t *testing.T) {
	snapshot := filterSnapshot()
	filter := NewExcludeFile("")
	require.NoError(t, filter.Validate())

	step, err := filter.Apply(context.Background(), zap.NewNop(), snapshot)
	require.NoError(t, err)

	assert.Equal(t, 0, step.Dropped)
	assert.Equal(t, 3, snapshot.Talents.Len())
}

func TestExcludeFileFilterMissingFile(t *testing.T) {
	filter := NewExcludeFile(filepath.Join(t.TempDir(), "missing.json"))

	assert.Error(t, filter.Validate())
}

func TestRunAppliesFiltersInOrder(t *testing.T) {
	snapshot := filterSnapshot()

	err := Run(context.Background(), zap.NewNop(), []Filter{
		NewDuplicates(),
		NewExcludeFile(""),
	}, snapshot)
	require.NoError(t, err)

	assert.Equal(t, 2, snapshot.Talents.Len())
	assert.Equal(t, 2, snapshot.Opportunities.Len())
}

func TestRunSurfacesValidationErrors(t *testing.T) {
	err := Run(context.Background(), zap.NewNop(), []Filter{
		NewExcludeFile(filepath.Join(t.TempDir(), "missing.json")),
	}, filterSnapshot())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exclude_file")
}
