package matching

import (
	"testing"

	talentmodels "talentry/internal/talent/models"
)

func TestBaselineScorerIsConstant(t *testing.T) {
	scorer := NewBaselineScorer()

	if got := scorer.Score(EvaluationInput{}); got != 75 {
		t.Fatalf("expected baseline score 75 for empty input, got %d", got)
	}

	withTalent := EvaluationInput{
		Talent:   &talentmodels.TalentProfile{DisplayName: "Ada", Skills: []string{"go"}},
		Criteria: []string{"skill-match"},
	}
	if got := scorer.Score(withTalent); got != 75 {
		t.Fatalf("expected baseline score 75 regardless of input, got %d", got)
	}
}

func TestConfidenceLadder(t *testing.T) {
	cases := []struct {
		score int
		want  int
	}{
		{100, 95},
		{85, 95},
		{81, 95},
		{80, 75},
		{75, 75},
		{70, 75},
		{61, 75},
		{60, 50},
		{50, 50},
		{1, 50},
		{0, 50},
	}
	for _, tc := range cases {
		if got := ConfidenceFor(tc.score); got != tc.want {
			t.Fatalf("ConfidenceFor(%d) = %d, want %d", tc.score, got, tc.want)
		}
	}
}

func TestBaselineScoreLandsInMidConfidenceBand(t *testing.T) {
	scorer := NewBaselineScorer()
	score := scorer.Score(EvaluationInput{})
	if got := ConfidenceFor(score); got != 75 {
		t.Fatalf("expected baseline evaluations to carry confidence 75, got %d", got)
	}
}
