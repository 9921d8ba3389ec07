package scoring

import (
	"talent-match/internal/domain/facts"
)

// SalaryScore compares the job's salary range with the candidate's desired
// range. A negotiable job salary dominates every other input; missing data
// on either side is neutral; otherwise the overlap between the normalized
// ranges decides the score.
func SalaryScore(job facts.JobFacts, cand facts.CandidateFacts) CriterionResult {
	if job.IsSalaryNegotiable {
		return CriterionResult{
			Score:  80,
			Status: "negotiable",
			Details: map[string]any{
				"is_negotiable": true,
				"message":       "job salary is negotiable",
			},
		}
	}

	if job.SalaryMin == nil && job.SalaryMax == nil {
		return CriterionResult{
			Score:  70,
			Status: "job_salary_unknown",
			Details: map[string]any{
				"message": "job salary not specified",
			},
		}
	}

	if cand.DesiredSalaryMin == nil && cand.DesiredSalaryMax == nil {
		return CriterionResult{
			Score:  70,
			Status: "candidate_expectation_unknown",
			Details: map[string]any{
				"message": "candidate salary expectation not specified",
			},
		}
	}

	jobCurrency := currencyOrDefault(job.SalaryCurrency)
	candCurrency := currencyOrDefault(cand.SalaryCurrency)
	if jobCurrency != candCurrency {
		return CriterionResult{
			Score:  50,
			Status: "currency_mismatch",
			Details: map[string]any{
				"job_currency":       jobCurrency,
				"candidate_currency": candCurrency,
			},
		}
	}

	jMin, jMax := normalizeRange(job.SalaryMin, job.SalaryMax)
	cMin, cMax := normalizeRange(cand.DesiredSalaryMin, cand.DesiredSalaryMax)

	overlapStart := maxFloat(jMin, cMin)
	overlapEnd := minFloat(jMax, cMax)

	var score float64
	var status string
	details := map[string]any{
		"job_salary_min":       jMin,
		"job_salary_max":       jMax,
		"candidate_salary_min": cMin,
		"candidate_salary_max": cMax,
		"currency":             jobCurrency,
	}

	switch {
	case overlapStart <= overlapEnd:
		details["overlap_start"] = overlapStart
		details["overlap_end"] = overlapEnd

		switch {
		case jMin <= cMin && jMax >= cMax:
			score, status = 100, "full_match"
		case overlapRatio(overlapEnd-overlapStart, cMin, cMax) >= 0.5:
			score, status = 85, "good_overlap"
		default:
			score, status = 70, "partial_overlap"
		}
	case jMax < cMin:
		gapRatio := 1.0
		if cMin > 0 {
			gapRatio = (cMin - jMax) / cMin
		}
		details["gap_ratio"] = round2(gapRatio)
		switch {
		case gapRatio <= 0.1:
			score, status = 60, "slightly_below_expectation"
		case gapRatio <= 0.2:
			score, status = 40, "below_expectation"
		default:
			score, status = 20, "far_below_expectation"
		}
	default:
		score, status = 100, "above_expectation"
	}

	details["status"] = status
	return CriterionResult{Score: round2(score), Status: status, Details: details}
}

// normalizeRange fills a missing bound from the present one.
func normalizeRange(lo, hi *float64) (float64, float64) {
	var vLo, vHi float64
	switch {
	case lo != nil && hi != nil:
		vLo, vHi = *lo, *hi
	case lo != nil:
		vLo, vHi = *lo, *lo
	case hi != nil:
		vLo, vHi = *hi, *hi
	}
	return vLo, vHi
}

// overlapRatio measures the overlap against the candidate's span; a
// degenerate span falls back to 10% of its max, or 1.
func overlapRatio(overlap, cMin, cMax float64) float64 {
	span := cMax - cMin
	if span <= 0 {
		span = cMax * 0.1
		if span == 0 {
			span = 1
		}
	}
	return overlap / span
}

func currencyOrDefault(c string) string {
	if c == "" {
		return "VND"
	}
	return c
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
