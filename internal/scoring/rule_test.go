package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/voicehire/internal/catalog"
)

func TestRuleScorerFullStackMatch(t *testing.T) {
	talent := &catalog.TalentProfile{
		ID:              "t-1",
		Name:            "Ananya Sharma",
		Role:            "engineer",
		YearsExperience: 5,
		Skills:          []string{"React", "Node"},
		Location:        "Austin, TX",
		TalentType:      catalog.TalentTypeExisting,
	}
	opportunity := &catalog.Opportunity{
		ID:           "o-1",
		Title:        "Platform Engineer",
		RequiredRole: "engineer",
		Description:  "React and Node developer needed",
		Location:     "Austin, TX",
		Status:       catalog.OpportunityOpen,
	}

	result, err := NewRuleScorer().Score(context.Background(), talent, opportunity)
	require.NoError(t, err)

	// 50 (2/2 skills) + 25 (exact role) + 9.375 (5/8 of 15) + 5 (location)
	// + 3 (employee with capacity), rounded.
	assert.Equal(t, 92, result.Score)
	assert.Equal(t,
		"2/2 relevant skills matched; Perfect role match; 5 years experience; Location match; Has capacity",
		result.Explanation,
	)
}

func TestRuleScorerClampsToUpperBound(t *testing.T) {
	talent := &catalog.TalentProfile{
		Role:            "engineer",
		YearsExperience: 12,
		Skills:          []string{"React", "Node"},
		Bio:             "building dashboards with react and node",
		Location:        "Austin, TX",
		TalentType:      catalog.TalentTypeProspect,
		ProspectStatus:  catalog.ProspectStatusAvailable,
	}
	opportunity := &catalog.Opportunity{
		RequiredRole: "engineer",
		Description:  "building dashboards with react and node",
		Location:     "Austin, TX",
	}

	result, err := NewRuleScorer().Score(context.Background(), talent, opportunity)
	require.NoError(t, err)

	assert.Equal(t, 100, result.Score)
}

func TestRuleScorerClampsToLowerBound(t *testing.T) {
	talent := &catalog.TalentProfile{
		Role:       "accountant",
		TalentType: catalog.TalentTypeExisting,
		Assignments: []catalog.ProjectAssignment{
			{UtilizationPercentage: 100},
		},
	}
	opportunity := &catalog.Opportunity{
		RequiredRole: "chef",
		Description:  "cooking meals for the office",
	}

	result, err := NewRuleScorer().Score(context.Background(), talent, opportunity)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Contains(t, result.Explanation, "Role mismatch")
	assert.Contains(t, result.Explanation, "Fully allocated")
}

func TestRuleScorerEmptyProfiles(t *testing.T) {
	result, err := NewRuleScorer().Score(context.Background(), &catalog.TalentProfile{}, &catalog.Opportunity{})
	require.NoError(t, err)

	// No skills mentioned, role mismatch penalty and zero experience leave
	// nothing but the capacity bonus.
	assert.GreaterOrEqual(t, result.Score, 0)
	assert.LessOrEqual(t, result.Score, 100)
	assert.Contains(t, result.Explanation, "no specific skills mentioned")
}

func TestRuleScorerRoleVariants(t *testing.T) {
	tests := []struct {
		name         string
		role         string
		requiredRole string
		explanation  string
	}{
		{"close match", "Senior QA Engineer", "QA Engineer", "Close role match"},
		{"related role", "tester", "qa", "Related role"},
		{"mismatch", "accountant", "QA Engineer", "Role mismatch"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			talent := &catalog.TalentProfile{Role: tc.role, TalentType: catalog.TalentTypeExisting}
			opportunity := &catalog.Opportunity{
				RequiredRole: tc.requiredRole,
				Description:  "selenium automation suite",
			}
			result, err := NewRuleScorer().Score(context.Background(), talent, opportunity)
			require.NoError(t, err)
			assert.Contains(t, result.Explanation, tc.explanation)
		})
	}
}

func TestRuleScorerMentionedInDescription(t *testing.T) {
	opportunity := &catalog.Opportunity{
		Description: "looking for a designer to refresh the brand",
	}
	talent := &catalog.TalentProfile{Role: "Designer", TalentType: catalog.TalentTypeExisting}

	result, err := NewRuleScorer().Score(context.Background(), talent, opportunity)
	require.NoError(t, err)

	assert.Contains(t, result.Explanation, "Role mentioned in description")
}

func TestRuleScorerNearbyLocation(t *testing.T) {
	talent := &catalog.TalentProfile{Location: "Austin", TalentType: catalog.TalentTypeExisting}
	opportunity := &catalog.Opportunity{Location: "Austin, TX"}

	result, err := NewRuleScorer().Score(context.Background(), talent, opportunity)
	require.NoError(t, err)

	assert.Contains(t, result.Explanation, "Nearby location")
}
