package scoring

import (
	"talent-match/internal/domain/facts"
)

// EducationScore compares the candidate's highest education level against
// the level inferred from the job's seniority. A candidate meeting or
// exceeding the requirement scores full; each level of gap costs
// progressively more. Unknown education is neutral rather than penalized.
func EducationScore(job facts.JobFacts, cand facts.CandidateFacts) CriterionResult {
	required := job.Level.RequiredEducation()
	requiredRank := required.Rank()
	candRank := cand.HighestEducation.Rank()

	if candRank == 0 {
		return CriterionResult{
			Score:  50,
			Status: "unknown",
			Details: map[string]any{
				"required_education":  string(required),
				"required_value":      requiredRank,
				"candidate_education": nil,
				"candidate_value":     0,
				"message":             "candidate education level not specified",
			},
		}
	}

	gap := requiredRank - candRank

	var score float64
	var status string
	switch {
	case gap <= 0:
		score, status = 100, "meets_or_exceeds"
	case gap == 1:
		score, status = 85, "slightly_below"
	case gap == 2:
		score, status = 60, "below_requirement"
	default:
		score, status = 30, "significantly_below"
	}

	return CriterionResult{
		Score:  round2(score),
		Status: status,
		Details: map[string]any{
			"required_education":  string(required),
			"required_value":      requiredRank,
			"candidate_education": string(cand.HighestEducation),
			"candidate_value":     candRank,
			"education_gap":       gap,
		},
	}
}
