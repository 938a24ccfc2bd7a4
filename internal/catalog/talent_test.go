package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUtilizationIsCapped(t *testing.T) {
	talent := &TalentProfile{
		Assignments: []ProjectAssignment{
			{ProjectName: "alpha", UtilizationPercentage: 60},
			{ProjectName: "beta", UtilizationPercentage: 60},
		},
	}

	assert.Equal(t, 100, talent.Utilization())
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name      string
		talent    *TalentProfile
		available bool
	}{
		{
			name:      "available prospect",
			talent:    &TalentProfile{TalentType: TalentTypeProspect, ProspectStatus: ProspectStatusAvailable},
			available: true,
		},
		{
			name:      "prospect with unset status",
			talent:    &TalentProfile{TalentType: TalentTypeProspect},
			available: true,
		},
		{
			name:      "interviewing prospect",
			talent:    &TalentProfile{TalentType: TalentTypeProspect, ProspectStatus: ProspectStatusInterviewing},
			available: false,
		},
		{
			name:      "rejected prospect",
			talent:    &TalentProfile{TalentType: TalentTypeProspect, ProspectStatus: ProspectStatusRejected},
			available: false,
		},
		{
			name:      "unassigned employee",
			talent:    &TalentProfile{TalentType: TalentTypeExisting},
			available: true,
		},
		{
			name: "partially allocated employee",
			talent: &TalentProfile{
				TalentType:  TalentTypeExisting,
				Assignments: []ProjectAssignment{{UtilizationPercentage: 50}},
			},
			available: true,
		},
		{
			name: "fully allocated employee",
			talent: &TalentProfile{
				TalentType:  TalentTypeExisting,
				Assignments: []ProjectAssignment{{UtilizationPercentage: 100}},
			},
			available: false,
		},
		{
			name: "over-allocated employee",
			talent: &TalentProfile{
				TalentType:  TalentTypeExisting,
				Assignments: []ProjectAssignment{{UtilizationPercentage: 80}, {UtilizationPercentage: 40}},
			},
			available: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.available, tc.talent.IsAvailable())
		})
	}
}

func TestAvailablePreservesOrder(t *testing.T) {
	talents := &Talents{Items: []*TalentProfile{
		{Name: "First", TalentType: TalentTypeProspect, ProspectStatus: ProspectStatusAvailable},
		{Name: "Busy", TalentType: TalentTypeExisting, Assignments: []ProjectAssignment{{UtilizationPercentage: 100}}},
		{Name: "Second", TalentType: TalentTypeExisting},
	}}

	available := talents.Available()

	assert.Equal(t, []string{"First", "Second"}, available.Names())
}

func TestFindByNameIsCaseInsensitive(t *testing.T) {
	talents := &Talents{Items: []*TalentProfile{
		{Name: "Fijula Rao"},
		{Name: "Ananya Sharma"},
	}}

	found := talents.FindByName("fijula rao")
	if assert.NotNil(t, found) {
		assert.Equal(t, "Fijula Rao", found.Name)
	}

	assert.Nil(t, talents.FindByName("Nobody"))
}

func TestSearchTextCoversFreeTextFields(t *testing.T) {
	talent := &TalentProfile{
		Skills:         []string{"React", "TypeScript"},
		Bio:            "Frontend specialist",
		WorkExperience: "Built dashboards",
		Education:      "BSc",
		Certifications: "AWS Certified",
	}

	text := talent.SearchText()

	assert.Contains(t, text, "react")
	assert.Contains(t, text, "typescript")
	assert.Contains(t, text, "frontend specialist")
	assert.Contains(t, text, "dashboards")
	assert.Contains(t, text, "aws certified")
}
