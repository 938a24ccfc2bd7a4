package pipeline

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mkravets/voicehire/internal/catalog"
	"github.com/mkravets/voicehire/internal/fuzzy"
	"github.com/mkravets/voicehire/internal/intent"
)

const noMatchesExplanation = "no specific matches found"

func (p *Pipeline) execute(ctx context.Context, resolved *intent.Intent, snapshot *catalog.Snapshot) (*Result, error) {
	switch resolved.Action {
	case intent.ActionFindTalents:
		return p.findTalents(resolved, snapshot), nil
	case intent.ActionFindOpportunities:
		return p.findOpportunities(resolved, snapshot), nil
	case intent.ActionShowTalentProfile:
		return p.showTalentProfile(resolved, snapshot), nil
	case intent.ActionMatchTalentToOpportunity:
		return p.matchTalentToOpportunity(ctx, resolved, snapshot)
	case intent.ActionMatchOpportunityToTalents:
		return p.matchOpportunityToTalents(ctx, resolved, snapshot)
	case intent.ActionShowStats:
		return p.showStats(snapshot), nil
	default:
		return nil, fmt.Errorf("unsupported action %q", resolved.Action)
	}
}

// findOpportunities ranks open opportunities against the extracted filters.
// When filters exist but nothing passes, the query widens to all open
// opportunities instead of returning an empty result over a non-empty catalog.
func (p *Pipeline) findOpportunities(resolved *intent.Intent, snapshot *catalog.Snapshot) *Result {
	open := snapshot.Opportunities.Open()

	if len(resolved.Filters.Keywords) > 0 {
		matches := make([]*Match, 0, open.Len())
		for _, opp := range open.Items {
			score := overlapScore(opp.SearchText(), resolved.Filters.Keywords)
			if score == 0 {
				continue
			}
			matches = append(matches, &Match{
				Opportunity: opp,
				Score:       score,
				Explanation: "keyword overlap with command",
			})
		}
		sortMatches(matches)
		return &Result{
			Kind:    KindOpportunities,
			Matches: applyLimit(matches, resolved.LimitResults),
		}
	}

	filtered := false
	matches := make([]*Match, 0, open.Len())
	for _, opp := range open.Items {
		score, explanation, hasFilters := opportunityRelevance(opp, resolved.Filters)
		filtered = filtered || hasFilters
		if hasFilters && score == 0 {
			continue
		}
		matches = append(matches, &Match{Opportunity: opp, Score: score, Explanation: explanation})
	}

	if filtered && len(matches) == 0 {
		p.logger.Info("no opportunities matched the filters, widening to all open")
		return widenedOpportunities(open)
	}

	sortMatches(matches)
	return &Result{
		Kind:    KindOpportunities,
		Matches: applyLimit(matches, resolved.LimitResults),
		Message: resolved.Response,
	}
}

// findTalents ranks currently-available talents against the extracted
// filters, widening the same way findOpportunities does.
func (p *Pipeline) findTalents(resolved *intent.Intent, snapshot *catalog.Snapshot) *Result {
	available := snapshot.Talents.Available()

	if len(resolved.Filters.Keywords) > 0 {
		matches := make([]*Match, 0, available.Len())
		for _, talent := range available.Items {
			text := talent.SearchText() + " " + strings.ToLower(talent.Name+" "+talent.Role)
			score := overlapScore(text, resolved.Filters.Keywords)
			if score == 0 {
				continue
			}
			matches = append(matches, &Match{
				Talent:      talent,
				Score:       score,
				Explanation: "keyword overlap with command",
			})
		}
		sortMatches(matches)
		return &Result{
			Kind:    KindTalents,
			Matches: applyLimit(matches, resolved.LimitResults),
		}
	}

	filtered := false
	matches := make([]*Match, 0, available.Len())
	for _, talent := range available.Items {
		score, explanation, hasFilters := talentRelevance(talent, resolved.Filters)
		filtered = filtered || hasFilters
		if hasFilters && score == 0 {
			continue
		}
		matches = append(matches, &Match{Talent: talent, Score: score, Explanation: explanation})
	}

	if filtered && len(matches) == 0 {
		p.logger.Info("no talents matched the filters, widening to all available")
		return widenedTalents(available)
	}

	sortMatches(matches)
	return &Result{
		Kind:    KindTalents,
		Matches: applyLimit(matches, resolved.LimitResults),
		Message: resolved.Response,
	}
}

func (p *Pipeline) showTalentProfile(resolved *intent.Intent, snapshot *catalog.Snapshot) *Result {
	talent := resolveTalent(resolved.Filters.TalentName, snapshot.Talents)
	if talent == nil {
		p.logger.Info("talent not resolved, widening to available talents",
			zap.String("talent_name", resolved.Filters.TalentName))
		result := widenedTalents(snapshot.Talents.Available())
		result.Message = "talent not found, showing available talents"
		return result
	}

	return &Result{
		Kind: KindTalents,
		Matches: []*Match{{
			Talent:      talent,
			Score:       100,
			Explanation: "requested profile",
		}},
	}
}

func (p *Pipeline) matchTalentToOpportunity(ctx context.Context, resolved *intent.Intent, snapshot *catalog.Snapshot) (*Result, error) {
	talent := resolveTalent(resolved.Filters.TalentName, snapshot.Talents)
	if talent == nil {
		result := widenedTalents(snapshot.Talents.Available())
		result.Message = "talent not found, showing available talents"
		return result, nil
	}

	open := snapshot.Opportunities.Open()
	if open.Len() == 0 {
		return &Result{Kind: KindOpportunities, Message: "no open opportunities"}, nil
	}

	matches := make([]*Match, open.Len())
	g, ctx := errgroup.WithContext(ctx)
	for i, opp := range open.Items {
		g.Go(func() error {
			scored, err := p.scorer.Score(ctx, talent, opp)
			if err != nil {
				return err
			}
			matches[i] = &Match{Opportunity: opp, Score: scored.Score, Explanation: scored.Explanation}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortMatches(matches)
	return &Result{
		Kind:    KindOpportunities,
		Matches: matches,
		Message: "opportunities ranked for " + talent.Name,
	}, nil
}

func (p *Pipeline) matchOpportunityToTalents(ctx context.Context, resolved *intent.Intent, snapshot *catalog.Snapshot) (*Result, error) {
	open := snapshot.Opportunities.Open()

	opportunity := resolveOpportunity(resolved.Filters.OpportunityTitle, open)
	if opportunity == nil {
		result := widenedOpportunities(open)
		result.Message = "opportunity not found, showing open opportunities"
		return result, nil
	}

	available := snapshot.Talents.Available()
	if available.Len() == 0 {
		return &Result{Kind: KindTalents, Message: "no available talents"}, nil
	}

	matches := make([]*Match, available.Len())
	g, ctx := errgroup.WithContext(ctx)
	for i, talent := range available.Items {
		g.Go(func() error {
			scored, err := p.scorer.Score(ctx, talent, opportunity)
			if err != nil {
				return err
			}
			matches[i] = &Match{Talent: talent, Score: scored.Score, Explanation: scored.Explanation}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortMatches(matches)
	return &Result{
		Kind:    KindTalents,
		Matches: matches,
		Message: "talents ranked for " + opportunity.Title,
	}, nil
}

// showStats lists the available talents alongside aggregate counts computed
// through the same availability classifier used for matching.
func (p *Pipeline) showStats(snapshot *catalog.Snapshot) *Result {
	result := widenedTalents(snapshot.Talents.Available())
	for _, match := range result.Matches {
		match.Explanation = "available"
	}
	result.Stats = snapshot.Stats()
	result.Message = ""
	return result
}

// resolveTalent tries an exact name lookup, then the fuzzy resolver.
func resolveTalent(name string, talents *catalog.Talents) *catalog.TalentProfile {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if talent := talents.FindByName(name); talent != nil {
		return talent
	}
	if resolved, ok := fuzzy.Resolve(name, talents.Names()); ok {
		return talents.FindByName(resolved)
	}
	return nil
}

func resolveOpportunity(title string, open *catalog.Opportunities) *catalog.Opportunity {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	if opp := open.FindByTitle(title); opp != nil {
		return opp
	}
	if resolved, ok := fuzzy.Resolve(title, open.Titles()); ok {
		return open.FindByTitle(resolved)
	}
	return nil
}

// opportunityRelevance scores an opportunity against the structured filters as
// the fraction of satisfied signals. No filters means an unconstrained
// listing, which every open opportunity satisfies fully.
func opportunityRelevance(opp *catalog.Opportunity, filters intent.Filters) (int, string, bool) {
	text := opp.SearchText()
	total := 0
	matched := 0
	var parts []string

	for _, skill := range filters.Skills {
		total++
		if strings.Contains(text, strings.ToLower(skill)) {
			matched++
			parts = append(parts, skill)
		}
	}

	if filters.Role != "" {
		total++
		if strings.Contains(text, strings.ToLower(filters.Role)) {
			matched++
			parts = append(parts, "role: "+filters.Role)
		}
	}

	if filters.OpportunityTitle != "" {
		total++
		if strings.Contains(strings.ToLower(opp.Title), strings.ToLower(filters.OpportunityTitle)) {
			matched++
			parts = append(parts, "title: "+filters.OpportunityTitle)
		}
	}

	if filters.Location != "" {
		total++
		if containsEitherWay(opp.Location, filters.Location) {
			matched++
			parts = append(parts, "location: "+filters.Location)
		}
	}

	if total == 0 {
		return 100, "open opportunity", false
	}
	if matched == 0 {
		return 0, "", true
	}
	return relevancePercent(matched, total), "matches " + strings.Join(parts, ", "), true
}

func talentRelevance(talent *catalog.TalentProfile, filters intent.Filters) (int, string, bool) {
	text := talent.SearchText()
	role := strings.ToLower(talent.Role)
	total := 0
	matched := 0
	var parts []string

	for _, skill := range filters.Skills {
		total++
		if strings.Contains(text, strings.ToLower(skill)) {
			matched++
			parts = append(parts, skill)
		}
	}

	if filters.Role != "" {
		total++
		want := strings.ToLower(filters.Role)
		if role != "" && (strings.Contains(role, want) || strings.Contains(want, role)) {
			matched++
			parts = append(parts, "role: "+filters.Role)
		}
	}

	if filters.ExperienceMin > 0 {
		total++
		if talent.YearsExperience >= filters.ExperienceMin {
			matched++
			parts = append(parts, fmt.Sprintf("%d+ years", filters.ExperienceMin))
		}
	}

	if filters.Location != "" {
		total++
		if containsEitherWay(talent.Location, filters.Location) {
			matched++
			parts = append(parts, "location: "+filters.Location)
		}
	}

	if total == 0 {
		return 100, "available talent", false
	}
	if matched == 0 {
		return 0, "", true
	}
	return relevancePercent(matched, total), "matches " + strings.Join(parts, ", "), true
}

func widenedOpportunities(open *catalog.Opportunities) *Result {
	matches := make([]*Match, 0, open.Len())
	for _, opp := range open.Items {
		matches = append(matches, &Match{Opportunity: opp, Score: 0, Explanation: noMatchesExplanation})
	}
	return &Result{Kind: KindOpportunities, Matches: matches, Message: noMatchesExplanation}
}

func widenedTalents(available *catalog.Talents) *Result {
	matches := make([]*Match, 0, available.Len())
	for _, talent := range available.Items {
		matches = append(matches, &Match{Talent: talent, Score: 0, Explanation: noMatchesExplanation})
	}
	return &Result{Kind: KindTalents, Matches: matches, Message: noMatchesExplanation}
}

// overlapScore converts a literal keyword overlap count into a 0-100 score.
func overlapScore(text string, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	if hits == 0 {
		return 0
	}
	return relevancePercent(hits, len(keywords))
}

func relevancePercent(matched, total int) int {
	return int(math.Round(float64(matched) / float64(total) * 100))
}

// sortMatches ranks descending by score; ties keep catalog iteration order.
func sortMatches(matches []*Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
}

func applyLimit(matches []*Match, limit int) []*Match {
	if limit > 0 && len(matches) > limit {
		return matches[:limit]
	}
	return matches
}

func containsEitherWay(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
