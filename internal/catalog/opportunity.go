package catalog

import "strings"

// OpportunityStatus is the lifecycle state of a job opportunity.
type OpportunityStatus string

const (
	OpportunityOpen      OpportunityStatus = "open"
	OpportunityFilled    OpportunityStatus = "filled"
	OpportunityCancelled OpportunityStatus = "cancelled"
	OpportunityOnHold    OpportunityStatus = "on_hold"
)

// Opportunity is a read-only snapshot of one open position. Owned by the
// persistence layer.
type Opportunity struct {
	ID           string            `json:"id,omitempty"`
	Title        string            `json:"title,omitempty"`
	Description  string            `json:"description,omitempty"`
	RequiredRole string            `json:"required_role,omitempty"`
	Location     string            `json:"location,omitempty"`
	Status       OpportunityStatus `json:"status,omitempty"`
	StartDate    string            `json:"start_date,omitempty"`
	EndDate      string            `json:"end_date,omitempty"`
}

// SearchText returns the lower-cased title, role and description used for
// keyword containment checks.
func (o *Opportunity) SearchText() string {
	return strings.ToLower(o.Title + " " + o.RequiredRole + " " + o.Description)
}

// Opportunities is a list of opportunities preserving catalog iteration order.
type Opportunities struct {
	Items []*Opportunity
}

func (o *Opportunities) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Items)
}

// Titles returns opportunity titles in catalog order.
func (o *Opportunities) Titles() []string {
	titles := make([]string, 0, o.Len())
	for _, item := range o.Items {
		titles = append(titles, item.Title)
	}
	return titles
}

// FindByTitle returns the first opportunity whose title matches
// case-insensitively.
func (o *Opportunities) FindByTitle(title string) *Opportunity {
	for _, item := range o.Items {
		if strings.EqualFold(item.Title, title) {
			return item
		}
	}
	return nil
}

// Open returns only opportunities with status "open", preserving catalog
// order. Only open opportunities are matching-eligible.
func (o *Opportunities) Open() *Opportunities {
	out := &Opportunities{Items: make([]*Opportunity, 0, o.Len())}
	for _, item := range o.Items {
		if item.Status == OpportunityOpen {
			out.Items = append(out.Items, item)
		}
	}
	return out
}
