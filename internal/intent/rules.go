package intent

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mkravets/voicehire/internal/catalog"
	"github.com/mkravets/voicehire/internal/fuzzy"
)

// Vocabulary for the object-word rules. Technology keywords come from the
// catalog taxonomy; these noun sets are fixed.
var (
	opportunityWords = []string{
		"opportunity", "opportunities", "job", "jobs", "position", "positions",
		"opening", "openings", "project", "projects", "vacancy", "vacancies",
	}

	talentWords = []string{
		"talent", "talents", "candidate", "candidates", "people", "person",
		"employee", "employees", "prospect", "prospects", "staff",
	}

	actionVerbs = []string{
		"show", "find", "list", "get", "display", "search", "give", "tell",
	}
)

var experiencePattern = regexp.MustCompile(`(\d+)\s*\+?\s*years?`)

const fallbackResultLimit = 10

// request carries the parsed transcript through the rule cascade.
type request struct {
	transcript string
	lower      string
	words      []string
	snapshot   *catalog.Snapshot
}

type rule struct {
	name  string
	apply func(*request) *Intent
}

// RuleResolver classifies transcripts with an ordered list of
// predicate-to-action rules. The first rule that produces an intent wins;
// ordering is part of the contract.
type RuleResolver struct {
	logger *zap.Logger
	rules  []rule
}

func NewRuleResolver(logger *zap.Logger) *RuleResolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &RuleResolver{logger: logger}
	r.rules = []rule{
		{name: "profile", apply: r.profileRule},
		{name: "opportunity_words", apply: r.opportunityWordsRule},
		{name: "talent_words", apply: r.talentWordsRule},
		{name: "name_spotting", apply: r.nameSpottingRule},
		{name: "keyword_search", apply: r.keywordSearchRule},
		{name: "bare_verb", apply: r.bareVerbRule},
		{name: "keyword_overlap", apply: r.keywordOverlapRule},
	}
	return r
}

func (r *RuleResolver) Resolve(_ context.Context, transcript string, snapshot *catalog.Snapshot) (*Intent, error) {
	lower := strings.ToLower(transcript)
	req := &request{
		transcript: transcript,
		lower:      lower,
		words:      splitWords(lower),
		snapshot:   snapshot,
	}

	for _, rule := range r.rules {
		result := rule.apply(req)
		if result == nil {
			continue
		}

		result.Source = "rules"
		r.logger.Debug("rule matched",
			zap.String("rule", rule.name),
			zap.String("action", string(result.Action)),
		)
		return result, nil
	}

	return nil, ErrUnrecognized
}

// profileRule: the literal word "profile" always means a profile request, even
// when role or opportunity cues are present in the same phrase.
func (r *RuleResolver) profileRule(req *request) *Intent {
	if !strings.Contains(req.lower, "profile") {
		return nil
	}

	result := &Intent{
		Action:     ActionShowTalentProfile,
		Confidence: 0.9,
	}
	if name, ok := r.spotName(req); ok {
		result.Filters.TalentName = name
	}
	return result
}

func (r *RuleResolver) opportunityWordsRule(req *request) *Intent {
	if !containsAny(req.words, opportunityWords) || containsAny(req.words, talentWords) {
		return nil
	}
	return &Intent{
		Action:     ActionFindOpportunities,
		Filters:    extractFilters(req),
		Confidence: 0.8,
	}
}

func (r *RuleResolver) talentWordsRule(req *request) *Intent {
	if !containsAny(req.words, talentWords) || containsAny(req.words, opportunityWords) {
		return nil
	}
	return &Intent{
		Action:     ActionFindTalents,
		Filters:    extractFilters(req),
		Confidence: 0.8,
	}
}

// nameSpottingRule: a fuzzy hit on a talent name with no other object cue
// means "find something for this person".
func (r *RuleResolver) nameSpottingRule(req *request) *Intent {
	name, ok := r.spotName(req)
	if !ok {
		return nil
	}
	return &Intent{
		Action:     ActionMatchTalentToOpportunity,
		Filters:    Filters{TalentName: name},
		Confidence: 0.7,
	}
}

// keywordSearchRule: technology or role keywords with no object words. Matching
// opportunities are preferred over matching talents.
func (r *RuleResolver) keywordSearchRule(req *request) *Intent {
	skills := catalog.KeywordsIn(req.lower)
	role := firstRoleWord(req.words)
	if len(skills) == 0 && role == "" {
		return nil
	}

	hits := append([]string{}, skills...)
	if role != "" {
		hits = append(hits, role)
	}

	if anyOpportunityContains(req.snapshot.Opportunities.Open(), hits) {
		return &Intent{
			Action:     ActionFindOpportunities,
			Filters:    Filters{Skills: skills, Role: role},
			Confidence: 0.6,
		}
	}

	if anyTalentContains(req.snapshot.Talents, hits) {
		return &Intent{
			Action:     ActionFindTalents,
			Filters:    Filters{Skills: skills, Role: role},
			Confidence: 0.6,
		}
	}

	return nil
}

// bareVerbRule: an action verb with no recognizable object defaults to
// listing everything open.
func (r *RuleResolver) bareVerbRule(req *request) *Intent {
	if !containsAny(req.words, actionVerbs) {
		return nil
	}
	return &Intent{
		Action:     ActionFindOpportunities,
		Confidence: 0.4,
	}
}

// keywordOverlapRule is the last resort: rank entities by literal word overlap
// with the transcript, and fall back to all available talents when even that
// finds nothing. Returns nil only when the catalog has nothing to show.
func (r *RuleResolver) keywordOverlapRule(req *request) *Intent {
	keywords := overlapKeywords(req.words)

	if len(keywords) > 0 {
		if countOverlapHits(req.snapshot.Opportunities.Open(), nil, keywords) > 0 {
			return &Intent{
				Action:       ActionFindOpportunities,
				Filters:      Filters{Keywords: keywords},
				Confidence:   0.3,
				LimitResults: fallbackResultLimit,
			}
		}
		if countOverlapHits(nil, req.snapshot.Talents, keywords) > 0 {
			return &Intent{
				Action:       ActionFindTalents,
				Filters:      Filters{Keywords: keywords},
				Confidence:   0.3,
				LimitResults: fallbackResultLimit,
			}
		}
	}

	if req.snapshot.Talents.Available().Len() > 0 {
		return &Intent{
			Action:     ActionFindTalents,
			Response:   "no specific matches found",
			Confidence: 0.2,
		}
	}

	return nil
}

// spotName runs the fuzzy resolver for every transcript word of length >= 3
// against the known talent names. Full names are tried first; individual name
// tokens second, so a mangled first name still resolves to its owner.
func (r *RuleResolver) spotName(req *request) (string, bool) {
	fullNames := req.snapshot.Talents.Names()

	tokenOwner := map[string]string{}
	var tokens []string
	for _, full := range fullNames {
		for _, token := range strings.Fields(full) {
			if len([]rune(token)) < 3 {
				continue
			}
			if _, seen := tokenOwner[token]; !seen {
				tokenOwner[token] = full
				tokens = append(tokens, token)
			}
		}
	}

	for _, word := range req.words {
		if len([]rune(word)) < 3 || isVocabularyWord(word) {
			continue
		}
		if match, ok := fuzzy.Resolve(word, fullNames); ok {
			return match, true
		}
		if match, ok := fuzzy.Resolve(word, tokens); ok {
			return tokenOwner[match], true
		}
	}

	return "", false
}

// isVocabularyWord filters command vocabulary out of name spotting so verbs
// and object nouns are never mistaken for a person.
func isVocabularyWord(word string) bool {
	for _, set := range [][]string{opportunityWords, talentWords, actionVerbs, catalog.RoleWords} {
		for _, entry := range set {
			if word == entry {
				return true
			}
		}
	}
	return false
}

func extractFilters(req *request) Filters {
	filters := Filters{
		Skills: catalog.KeywordsIn(req.lower),
		Role:   firstRoleWord(req.words),
	}

	if m := experiencePattern.FindStringSubmatch(req.lower); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			filters.ExperienceMin = years
		}
	}

	if loc, ok := extractLocation(req.words); ok {
		filters.Location = loc
	}

	return filters
}

// extractLocation picks the words following a trailing "in", e.g.
// "find developers in austin".
func extractLocation(words []string) (string, bool) {
	for i, word := range words {
		if word != "in" || i+1 >= len(words) {
			continue
		}
		rest := words[i+1:]
		if containsAny(rest, opportunityWords) || containsAny(rest, talentWords) {
			continue
		}
		return strings.Join(rest, " "), true
	}
	return "", false
}

func firstRoleWord(words []string) string {
	for _, word := range words {
		for _, role := range catalog.RoleWords {
			if word == role || word == role+"s" {
				return role
			}
		}
	}
	return ""
}

func containsAny(words []string, vocabulary []string) bool {
	for _, word := range words {
		for _, entry := range vocabulary {
			if word == entry {
				return true
			}
		}
	}
	return false
}

func anyOpportunityContains(opportunities *catalog.Opportunities, keywords []string) bool {
	for _, opp := range opportunities.Items {
		text := opp.SearchText()
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
	}
	return false
}

func anyTalentContains(talents *catalog.Talents, keywords []string) bool {
	for _, talent := range talents.Items {
		text := talent.SearchText() + " " + strings.ToLower(talent.Role)
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
	}
	return false
}

// countOverlapHits counts entities with at least one literal keyword hit.
// Exactly one of opportunities/talents is consulted per call.
func countOverlapHits(opportunities *catalog.Opportunities, talents *catalog.Talents, keywords []string) int {
	count := 0
	if opportunities != nil {
		for _, opp := range opportunities.Items {
			if overlapCount(opp.SearchText(), keywords) > 0 {
				count++
			}
		}
		return count
	}
	for _, talent := range talents.Items {
		text := talent.SearchText() + " " + strings.ToLower(talent.Name+" "+talent.Role)
		if overlapCount(text, keywords) > 0 {
			count++
		}
	}
	return count
}

func overlapCount(text string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}

// overlapKeywords keeps transcript words long enough to be meaningful for
// literal overlap ranking, minus command vocabulary.
func overlapKeywords(words []string) []string {
	var out []string
	for _, word := range words {
		if len([]rune(word)) < 3 || isVocabularyWord(word) {
			continue
		}
		out = append(out, word)
	}
	return out
}

// splitWords lower-cases, splits on whitespace and strips punctuation and
// possessive suffixes, so "Fibula's" spots the same name as "fibula".
func splitWords(lower string) []string {
	fields := strings.Fields(lower)
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		word := strings.TrimFunc(field, func(r rune) bool {
			return !isWordRune(r)
		})
		word = strings.TrimSuffix(word, "'s")
		word = strings.TrimSuffix(word, "’s")
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}

func isWordRune(r rune) bool {
	return r == '-' || r == '+' || r == '#' ||
		(r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r > 127
}
