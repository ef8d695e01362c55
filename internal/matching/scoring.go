// Package matching holds the compatibility scoring rules. This is pure domain
// logic - no I/O, no side effects. Stores, service orchestration, and the HTTP
// surface live in the subpackages.
package matching

import (
	opportunitymodels "talentry/internal/opportunity/models"
	talentmodels "talentry/internal/talent/models"
)

// EvaluationInput carries everything a scorer may consider. Either snapshot
// can be nil: evaluating a pair where one or both sides are unregistered is
// legal, and scorers must tolerate it.
type EvaluationInput struct {
	Talent      *talentmodels.TalentProfile
	Opportunity *opportunitymodels.Opportunity
	Criteria    []string
}

// Scorer produces a compatibility score in [0, 100] for a talent/opportunity
// pair. Implementations must be pure: same input, same score.
type Scorer interface {
	Score(input EvaluationInput) int
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(input EvaluationInput) int

func (f ScorerFunc) Score(input EvaluationInput) int {
	return f(input)
}

// baselineScore is what the baseline scorer assigns every pair. Downstream
// consumers calibrate against this fixed point, so it is not configurable.
const baselineScore = 75

// BaselineScorer is the shipped scorer: a constant score regardless of input.
// It exists so the evaluation pipeline, matrix persistence, and confidence
// derivation can run in production before a real model lands.
type BaselineScorer struct{}

func NewBaselineScorer() *BaselineScorer {
	return &BaselineScorer{}
}

func (*BaselineScorer) Score(EvaluationInput) int {
	return baselineScore
}

// ConfidenceFor derives the confidence band from a score. The thresholds are
// exclusive on the low side: 81-100 maps high, 61-80 maps mid, the rest low.
func ConfidenceFor(score int) int {
	switch {
	case score > 80:
		return 95
	case score > 60:
		return 75
	default:
		return 50
	}
}
