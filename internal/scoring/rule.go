package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mkravets/voicehire/internal/catalog"
)

// Weight ceilings per factor. The positive weights sum to 100; availability
// adjustments can push below a ceiling or subtract outright.
const (
	skillWeight      = 50.0
	roleWeight       = 25.0
	experienceWeight = 15.0
	locationWeight   = 5.0
	bioWeight        = 5.0

	// Experience saturates at this many years.
	experienceCeilingYears = 8.0
)

// RuleScorer is the deterministic scorer. It needs no network and never fails.
type RuleScorer struct{}

func NewRuleScorer() *RuleScorer {
	return &RuleScorer{}
}

func (s *RuleScorer) Score(_ context.Context, talent *catalog.TalentProfile, opportunity *catalog.Opportunity) (*MatchResult, error) {
	total := 0.0
	var reasons []string

	add := func(points float64, reason string) {
		total += points
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	add(scoreSkills(talent, opportunity))
	add(scoreRole(talent, opportunity))
	add(scoreExperience(talent))
	add(scoreLocation(talent, opportunity))
	add(scoreBioOverlap(talent, opportunity))
	add(scoreAvailability(talent))

	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &MatchResult{
		Score:       score,
		Explanation: strings.Join(reasons, "; "),
	}, nil
}

// scoreSkills awards up to 50 points for taxonomy keywords required by the
// opportunity that also appear in the talent's skills and free-text corpus.
func scoreSkills(talent *catalog.TalentProfile, opportunity *catalog.Opportunity) (float64, string) {
	required := catalog.KeywordsIn(opportunity.Description)
	if len(required) == 0 {
		return 0, "no specific skills mentioned"
	}

	corpus := talent.SearchText()
	matched := 0
	for _, kw := range required {
		if strings.Contains(corpus, kw) {
			matched++
		}
	}

	points := skillWeight * float64(matched) / float64(len(required))
	return points, fmt.Sprintf("%d/%d relevant skills matched", matched, len(required))
}

// scoreRole awards up to 25 points for role compatibility, or a 5 point
// penalty when the roles have nothing in common.
func scoreRole(talent *catalog.TalentProfile, opportunity *catalog.Opportunity) (float64, string) {
	talentRole := strings.ToLower(strings.TrimSpace(talent.Role))
	requiredRole := strings.ToLower(strings.TrimSpace(opportunity.RequiredRole))

	if talentRole != "" && requiredRole != "" {
		if talentRole == requiredRole {
			return roleWeight, "Perfect role match"
		}
		if strings.Contains(talentRole, requiredRole) || strings.Contains(requiredRole, talentRole) {
			return 20, "Close role match"
		}
		if catalog.RolesRelated(talentRole, requiredRole) {
			return 10, "Related role"
		}
	}

	if talentRole != "" && strings.Contains(opportunity.SearchText(), talentRole) {
		if catalog.IsCommonRoleSynonym(talentRole) {
			return 12, "Role mentioned in description"
		}
		return 15, "Role mentioned in description"
	}

	return -5, "Role mismatch"
}

// scoreExperience awards up to 15 points, saturating at eight years.
func scoreExperience(talent *catalog.TalentProfile) (float64, string) {
	years := talent.YearsExperience
	if years < 0 {
		years = 0
	}

	points := math.Min(experienceWeight, float64(years)/experienceCeilingYears*experienceWeight)
	return points, fmt.Sprintf("%d years experience", years)
}

func scoreLocation(talent *catalog.TalentProfile, opportunity *catalog.Opportunity) (float64, string) {
	talentLoc := strings.ToLower(strings.TrimSpace(talent.Location))
	oppLoc := strings.ToLower(strings.TrimSpace(opportunity.Location))

	if talentLoc == "" || oppLoc == "" {
		return 0, ""
	}
	if talentLoc == oppLoc {
		return locationWeight, "Location match"
	}
	if strings.Contains(talentLoc, oppLoc) || strings.Contains(oppLoc, talentLoc) {
		return 3, "Nearby location"
	}
	return 0, ""
}

// scoreBioOverlap awards up to 5 points for distinct tokens longer than three
// characters shared between the talent bio and the opportunity description.
func scoreBioOverlap(talent *catalog.TalentProfile, opportunity *catalog.Opportunity) (float64, string) {
	bioTokens := tokenize(talent.Bio)
	oppTokens := tokenize(opportunity.Description)
	if len(bioTokens) == 0 || len(oppTokens) == 0 {
		return 0, ""
	}

	common := 0
	for token := range bioTokens {
		if oppTokens[token] {
			common++
		}
	}
	if common == 0 {
		return 0, ""
	}

	longest := len(bioTokens)
	if len(oppTokens) > longest {
		longest = len(oppTokens)
	}

	points := math.Min(bioWeight, float64(common)/float64(longest)*bioWeight)
	return points, "Relevant background"
}

// scoreAvailability adjusts the total for current load: free prospects gain a
// little, overloaded employees lose a lot.
func scoreAvailability(talent *catalog.TalentProfile) (float64, string) {
	if talent.TalentType == catalog.TalentTypeProspect {
		if talent.ProspectStatus == catalog.ProspectStatusAvailable {
			return 5, "Available prospect"
		}
		return 0, ""
	}

	utilization := talent.Utilization()
	switch {
	case utilization >= 100:
		return -20, "Fully allocated"
	case utilization >= 80:
		return -5, "Nearly fully allocated"
	default:
		return 3, "Has capacity"
	}
}

func tokenize(text string) map[string]bool {
	tokens := map[string]bool{}
	for _, field := range strings.Fields(strings.ToLower(text)) {
		if len([]rune(field)) > 3 {
			tokens[field] = true
		}
	}
	return tokens
}
