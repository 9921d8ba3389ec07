package scoring

import (
	"fmt"
	"math"
)

// CriterionResult is the outcome of one criterion calculator: a clamped
// 0-100 score, a stable status string, and a shallow details map sufficient
// to reconstruct the reasoning.
type CriterionResult struct {
	Score   float64
	Status  string
	Details map[string]any
}

// SemanticResult extends CriterionResult with the flag that decides which
// weight profile the combiner applies. IsSemantic is true only when a real
// embedding similarity was computed.
type SemanticResult struct {
	CriterionResult
	IsSemantic bool
}

const (
	StatusError = "error"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Guard isolates a calculator: a panic inside fn degrades into a neutral
// result instead of taking the whole calculation down.
func Guard(fn func() CriterionResult) (res CriterionResult) {
	defer func() {
		if r := recover(); r != nil {
			res = CriterionResult{
				Score:  50,
				Status: StatusError,
				Details: map[string]any{
					"message": fmt.Sprintf("calculator panic: %v", r),
				},
			}
		}
	}()
	return fn()
}
