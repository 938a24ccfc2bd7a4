package gemini

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mkravets/voicehire/internal/catalog"
)

func TestScorerScore(t *testing.T) {
	stub := &stubGenerator{response: "```json\n" + `{"score": 87.6, "explanation": "Strong skill overlap"}` + "\n```"}

	talent := &catalog.TalentProfile{ID: "t-1", Name: "Fijula Rao"}
	opportunity := &catalog.Opportunity{ID: "o-1", Title: "QA Automation Engineer"}

	result, err := NewScorer(stub, zap.NewNop(), 0).Score(context.Background(), talent, opportunity)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if result.Score != 88 {
		t.Errorf("score = %d, want 88", result.Score)
	}
	if result.Explanation != "Strong skill overlap" {
		t.Errorf("explanation = %q", result.Explanation)
	}

	if len(stub.prompts) != 1 {
		t.Fatalf("expected one generation call, got %d", len(stub.prompts))
	}
	if !strings.Contains(stub.prompts[0], "Fijula Rao") || !strings.Contains(stub.prompts[0], "QA Automation Engineer") {
		t.Error("prompt does not carry the talent and opportunity payloads")
	}
}

func TestScorerClampsScore(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     int
	}{
		{"above range", `{"score": 140}`, 100},
		{"below range", `{"score": -12}`, 0},
		{"string score", `{"score": "73"}`, 73},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubGenerator{response: tc.response}
			result, err := NewScorer(stub, zap.NewNop(), 0).
				Score(context.Background(), &catalog.TalentProfile{}, &catalog.Opportunity{})
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if result.Score != tc.want {
				t.Errorf("score = %d, want %d", result.Score, tc.want)
			}
		})
	}
}

func TestScorerRejectsMissingScore(t *testing.T) {
	stub := &stubGenerator{response: `{"explanation": "no idea"}`}

	if _, err := NewScorer(stub, zap.NewNop(), 0).
		Score(context.Background(), &catalog.TalentProfile{}, &catalog.Opportunity{}); err == nil {
		t.Fatal("expected an error when the score is missing")
	}
}

func TestScorerRequiresBothEntities(t *testing.T) {
	stub := &stubGenerator{response: `{"score": 50}`}
	scorer := NewScorer(stub, zap.NewNop(), 0)

	if _, err := scorer.Score(context.Background(), nil, &catalog.Opportunity{}); err == nil {
		t.Fatal("expected an error for a nil talent")
	}
	if _, err := scorer.Score(context.Background(), &catalog.TalentProfile{}, nil); err == nil {
		t.Fatal("expected an error for a nil opportunity")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain object", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced without language", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"prose wrapped", `the result is {"a": 1} as requested`, `{"a": 1}`},
		{"no json at all", "nothing here", "nothing here"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.raw); got != tc.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
