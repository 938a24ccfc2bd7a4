package intent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mkravets/voicehire/internal/catalog"
)

func fixtureSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Talents: &catalog.Talents{Items: []*catalog.TalentProfile{
			{
				ID:             "t-1",
				Name:           "Fijula Rao",
				Role:           "QA Engineer",
				Skills:         []string{"Selenium", "Cypress"},
				TalentType:     catalog.TalentTypeProspect,
				ProspectStatus: catalog.ProspectStatusAvailable,
			},
			{
				ID:         "t-2",
				Name:       "Ananya Sharma",
				Role:       "Frontend Developer",
				Skills:     []string{"React", "TypeScript"},
				TalentType: catalog.TalentTypeExisting,
			},
		}},
		Opportunities: &catalog.Opportunities{Items: []*catalog.Opportunity{
			{
				ID:           "o-1",
				Title:        "Frontend Dashboard",
				RequiredRole: "Frontend Developer",
				Description:  "Build a dashboard with React",
				Status:       catalog.OpportunityOpen,
			},
			{
				ID:     "o-2",
				Title:  "Legacy Migration",
				Status: catalog.OpportunityFilled,
			},
		}},
	}
}

func resolve(t *testing.T, transcript string) *Intent {
	t.Helper()
	result, err := NewRuleResolver(zap.NewNop()).Resolve(context.Background(), transcript, fixtureSnapshot())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "rules", result.Source)
	return result
}

func TestProfileRuleResolvesMangledName(t *testing.T) {
	result := resolve(t, "show fibula's profile")

	assert.Equal(t, ActionShowTalentProfile, result.Action)
	assert.Equal(t, "Fijula Rao", result.Filters.TalentName)
}

func TestProfileRuleOverridesOtherCues(t *testing.T) {
	// Both "profile" and an opportunity noun appear; profile wins.
	result := resolve(t, "show the profile matching this job")

	assert.Equal(t, ActionShowTalentProfile, result.Action)
}

func TestOpportunityWordsRule(t *testing.T) {
	result := resolve(t, "find react opportunities")

	assert.Equal(t, ActionFindOpportunities, result.Action)
	assert.Equal(t, []string{"react"}, result.Filters.Skills)
}

func TestTalentWordsRule(t *testing.T) {
	result := resolve(t, "list candidates with 5+ years in austin")

	assert.Equal(t, ActionFindTalents, result.Action)
	assert.Equal(t, 5, result.Filters.ExperienceMin)
	assert.Equal(t, "austin", result.Filters.Location)
}

func TestMixedObjectWordsFallThroughToKeywordSearch(t *testing.T) {
	// Both noun families present: neither object rule may claim the phrase,
	// so the lower-confidence keyword search decides.
	result := resolve(t, "show candidates for open positions with react")

	assert.Equal(t, ActionFindOpportunities, result.Action)
	assert.InDelta(t, 0.6, result.Confidence, 0.001)
}

func TestNameSpottingRule(t *testing.T) {
	result := resolve(t, "what would suit fibula")

	assert.Equal(t, ActionMatchTalentToOpportunity, result.Action)
	assert.Equal(t, "Fijula Rao", result.Filters.TalentName)
}

func TestKeywordSearchPrefersOpportunities(t *testing.T) {
	result := resolve(t, "react")

	assert.Equal(t, ActionFindOpportunities, result.Action)
	assert.Equal(t, []string{"react"}, result.Filters.Skills)
}

func TestKeywordSearchFallsBackToTalents(t *testing.T) {
	// Selenium appears only in a talent's skills, not in any open opportunity.
	result := resolve(t, "selenium")

	assert.Equal(t, ActionFindTalents, result.Action)
	assert.Equal(t, []string{"selenium"}, result.Filters.Skills)
}

func TestBareVerbDefaultsToOpportunities(t *testing.T) {
	result := resolve(t, "show")

	assert.Equal(t, ActionFindOpportunities, result.Action)
	assert.InDelta(t, 0.4, result.Confidence, 0.001)
}

func TestKeywordOverlapLastResort(t *testing.T) {
	result := resolve(t, "dashboard work")

	assert.Equal(t, ActionFindOpportunities, result.Action)
	assert.Contains(t, result.Filters.Keywords, "dashboard")
	assert.Equal(t, fallbackResultLimit, result.LimitResults)
}

func TestUnmatchedTranscriptReturnsAvailableTalents(t *testing.T) {
	result := resolve(t, "qwertyuiop")

	assert.Equal(t, ActionFindTalents, result.Action)
	assert.Equal(t, "no specific matches found", result.Response)
}

func TestEmptyCatalogIsUnrecognized(t *testing.T) {
	empty := &catalog.Snapshot{
		Talents:       &catalog.Talents{},
		Opportunities: &catalog.Opportunities{},
	}

	_, err := NewRuleResolver(zap.NewNop()).Resolve(context.Background(), "qwertyuiop", empty)

	assert.ErrorIs(t, err, ErrUnrecognized)
}

func TestRuleOrderIsStable(t *testing.T) {
	// "profile" must beat name spotting even when a name is present.
	result := resolve(t, "fijula rao profile")

	assert.Equal(t, ActionShowTalentProfile, result.Action)
	assert.Equal(t, "Fijula Rao", result.Filters.TalentName)
}
