package scoring

import (
	"talent-match/internal/domain/facts"
)

// ExperienceScore scores the candidate's years of experience against the
// job's range. An open-ended range (no max) uses a gentler floor for
// under-qualified candidates; over-qualification degrades gradually.
func ExperienceScore(job facts.JobFacts, cand facts.CandidateFacts) CriterionResult {
	minExp := job.ExperienceYearsMin
	candExp := cand.YearsOfExperience

	var score float64
	var status string

	if job.ExperienceYearsMax == nil {
		switch {
		case candExp >= minExp:
			score, status = 100, "meets_requirement"
		case candExp >= minExp-1:
			score, status = 85, "slightly_under"
		case candExp >= minExp-2:
			score, status = 70, "under_requirement"
		default:
			score, status = proportionalUnder(candExp, minExp, 30, 60), "significantly_under"
		}
	} else {
		maxExp := *job.ExperienceYearsMax
		switch {
		case candExp >= minExp && candExp <= maxExp:
			score, status = 100, "perfect_fit"
		case candExp < minExp:
			gap := minExp - candExp
			switch {
			case gap <= 1:
				score, status = 85, "slightly_under"
			case gap <= 2:
				score, status = 70, "under_requirement"
			default:
				score, status = proportionalUnder(candExp, minExp, 20, 50), "significantly_under"
			}
		default:
			overage := candExp - maxExp
			switch {
			case overage <= 2:
				score, status = 90, "slightly_over"
			case overage <= 5:
				score, status = 75, "over_qualified"
			default:
				score, status = 60, "significantly_over"
			}
		}
	}

	gap := 0
	if candExp < minExp {
		gap = minExp - candExp
	}

	details := map[string]any{
		"job_min_experience":   minExp,
		"candidate_experience": candExp,
		"status":               status,
		"gap":                  gap,
	}
	if job.ExperienceYearsMax != nil {
		details["job_max_experience"] = *job.ExperienceYearsMax
	}

	return CriterionResult{Score: round2(score), Status: status, Details: details}
}

func proportionalUnder(candExp, minExp int, floor, scale float64) float64 {
	if minExp <= 0 {
		return floor
	}
	v := float64(candExp) / float64(minExp) * scale
	if v < floor {
		return floor
	}
	return v
}
