package fuzzy

import "testing"

func TestResolve(t *testing.T) {
	names := []string{"Fijula Rao", "Ananya Sharma", "Mark Chen"}

	tests := []struct {
		name       string
		query      string
		candidates []string
		want       string
		ok         bool
	}{
		{
			name:       "exact match ignores case",
			query:      "fijula rao",
			candidates: names,
			want:       "Fijula Rao",
			ok:         true,
		},
		{
			name:       "unique substring",
			query:      "ananya",
			candidates: names,
			want:       "Ananya Sharma",
			ok:         true,
		},
		{
			name:       "ambiguous substring falls through",
			query:      "ar",
			candidates: names,
			ok:         false,
		},
		{
			name:       "edit distance within floor",
			query:      "fibula",
			candidates: []string{"Fijula", "Rao", "Ananya"},
			want:       "Fijula",
			ok:         true,
		},
		{
			name:       "nothing clears the floor",
			query:      "zzzzzz",
			candidates: names,
			ok:         false,
		},
		{
			name:       "distance tie keeps first candidate",
			query:      "fara",
			candidates: []string{"cara", "dara"},
			want:       "cara",
			ok:         true,
		},
		{
			name:       "empty query",
			query:      "  ",
			candidates: names,
			ok:         false,
		},
		{
			name:  "no candidates",
			query: "fijula",
			ok:    false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Resolve(tc.query, tc.candidates)
			if ok != tc.ok {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tc.query, ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tc.query, got, tc.want)
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	candidates := []string{"cara", "dara", "tara"}
	first, ok := Resolve("fara", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	for i := 0; i < 10; i++ {
		got, ok := Resolve("fara", candidates)
		if !ok || got != first {
			t.Fatalf("run %d resolved %q, want %q", i, got, first)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"fibula", "fijula", 1},
		{"kitten", "sitting", 3},
		{"same", "same", 0},
	}

	for _, tc := range tests {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
