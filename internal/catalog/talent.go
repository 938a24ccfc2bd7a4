package catalog

import "strings"

// TalentType distinguishes employees already on staff from external prospects.
type TalentType string

const (
	TalentTypeExisting TalentType = "existing"
	TalentTypeProspect TalentType = "prospect"
)

// ProspectStatus is only meaningful for prospect talents.
type ProspectStatus string

const (
	ProspectStatusAvailable    ProspectStatus = "available"
	ProspectStatusInterviewing ProspectStatus = "interviewing"
	ProspectStatusRejected     ProspectStatus = "rejected"
	ProspectStatusInactive     ProspectStatus = "inactive"
)

// ProjectAssignment records how much of an existing employee's time a project
// consumes.
type ProjectAssignment struct {
	ProjectName           string `json:"project_name,omitempty"`
	UtilizationPercentage int    `json:"utilization_percentage,omitempty"`
}

// TalentProfile is a read-only snapshot of one talent record. The engine never
// mutates profiles; the persistence layer owns them.
type TalentProfile struct {
	ID              string              `json:"id,omitempty"`
	Name            string              `json:"name,omitempty"`
	Role            string              `json:"role,omitempty"`
	YearsExperience int                 `json:"years_experience,omitempty"`
	Skills          []string            `json:"skills,omitempty"`
	Bio             string              `json:"bio,omitempty"`
	WorkExperience  string              `json:"work_experience,omitempty"`
	Education       string              `json:"education,omitempty"`
	Certifications  string              `json:"certifications,omitempty"`
	Location        string              `json:"location,omitempty"`
	TalentType      TalentType          `json:"talent_type,omitempty"`
	ProspectStatus  ProspectStatus      `json:"prospect_status,omitempty"`
	Assignments     []ProjectAssignment `json:"assignments,omitempty"`
}

const utilizationCap = 100

// Utilization sums the utilization percentage across all assignments, capped
// at 100. All availability and scoring decisions use this value, never the raw
// sum.
func (t *TalentProfile) Utilization() int {
	total := 0
	for _, a := range t.Assignments {
		total += a.UtilizationPercentage
	}
	if total > utilizationCap {
		return utilizationCap
	}
	return total
}

// IsAvailable reports whether the talent can take on new work.
// Prospects are available while their status is "available" or unset.
// Existing employees are available while their capped utilization is below 100.
func (t *TalentProfile) IsAvailable() bool {
	if t.TalentType == TalentTypeProspect {
		return t.ProspectStatus == ProspectStatusAvailable || t.ProspectStatus == ""
	}
	return t.Utilization() < utilizationCap
}

// SearchText returns the lower-cased free-text corpus of the profile used for
// keyword containment checks: skills, bio, work experience, education and
// certifications.
func (t *TalentProfile) SearchText() string {
	parts := []string{
		strings.Join(t.Skills, " "),
		t.Bio,
		t.WorkExperience,
		t.Education,
		t.Certifications,
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Talents is a list of talent profiles preserving catalog iteration order.
type Talents struct {
	Items []*TalentProfile
}

func (t *Talents) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Items)
}

// Names returns full names in catalog order.
func (t *Talents) Names() []string {
	names := make([]string, 0, t.Len())
	for _, item := range t.Items {
		names = append(names, item.Name)
	}
	return names
}

// FindByName returns the first talent whose name matches case-insensitively.
func (t *Talents) FindByName(name string) *TalentProfile {
	for _, item := range t.Items {
		if strings.EqualFold(item.Name, name) {
			return item
		}
	}
	return nil
}

// Available returns the subset of talents that pass the availability rules,
// preserving catalog order.
func (t *Talents) Available() *Talents {
	out := &Talents{Items: make([]*TalentProfile, 0, t.Len())}
	for _, item := range t.Items {
		if item.IsAvailable() {
			out.Items = append(out.Items, item)
		}
	}
	return out
}
