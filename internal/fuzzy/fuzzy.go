// Package fuzzy resolves noisy name and title fragments against the set of
// known catalog entries. Voice transcripts routinely mangle proper nouns, so
// resolution degrades from exact matching through substring containment down
// to edit-distance similarity with a floor.
package fuzzy

import "strings"

// similarityFloor is the minimum similarity an edit-distance candidate must
// clear to be returned.
const similarityFloor = 0.7

// Resolve returns the catalog candidate best matching the query, or false when
// nothing clears the bar. Matching stages, first hit wins:
//
//  1. case-insensitive exact match
//  2. substring containment either way, only when exactly one candidate
//     qualifies (an ambiguous multi-match falls through instead of guessing)
//  3. smallest Levenshtein distance among candidates with similarity above
//     the floor; distance ties keep the first candidate in catalog order
func Resolve(query string, candidates []string) (string, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(candidates) == 0 {
		return "", false
	}

	for _, candidate := range candidates {
		if strings.ToLower(candidate) == query {
			return candidate, true
		}
	}

	var contained []string
	for _, candidate := range candidates {
		lower := strings.ToLower(candidate)
		if strings.Contains(lower, query) || strings.Contains(query, lower) {
			contained = append(contained, candidate)
		}
	}
	if len(contained) == 1 {
		return contained[0], true
	}

	best := ""
	bestDistance := -1
	for _, candidate := range candidates {
		lower := strings.ToLower(candidate)
		distance := levenshtein(query, lower)
		longest := max(len([]rune(query)), len([]rune(lower)))
		if longest == 0 {
			continue
		}
		similarity := 1 - float64(distance)/float64(longest)
		if similarity <= similarityFloor {
			continue
		}
		if bestDistance == -1 || distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}

	if bestDistance == -1 {
		return "", false
	}
	return best, true
}

// levenshtein computes the edit distance between two strings by runes, using
// the two-row dynamic programming form.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
