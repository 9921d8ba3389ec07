package scoring

import (
	"talent-match/internal/domain/facts"
)

// LocationScore compares job and candidate provinces. Remote jobs match
// anyone; the same province is a full match; the same North/Central/South
// region still counts; incomplete location data is neutral.
func LocationScore(job facts.JobFacts, cand facts.CandidateFacts) CriterionResult {
	if job.IsRemote {
		return CriterionResult{
			Score:  100,
			Status: "remote_job",
			Details: map[string]any{
				"is_remote": true,
				"message":   "remote job, location not required",
			},
		}
	}

	if job.ProvinceID == nil || cand.ProvinceID == nil {
		return CriterionResult{
			Score:  50,
			Status: "unknown_location",
			Details: map[string]any{
				"is_remote":             false,
				"job_province_id":       provinceIDValue(job.ProvinceID),
				"candidate_province_id": provinceIDValue(cand.ProvinceID),
				"message":               "location information incomplete",
			},
		}
	}

	jobRegion := facts.ProvinceRegion(job.ProvinceCode)
	candRegion := facts.ProvinceRegion(cand.ProvinceCode)

	var score float64
	var status string
	switch {
	case *job.ProvinceID == *cand.ProvinceID:
		score, status = 100, "same_province"
	case jobRegion != facts.RegionUnknown && jobRegion == candRegion:
		score, status = 70, "same_region"
	case jobRegion != facts.RegionUnknown && candRegion != facts.RegionUnknown:
		score, status = 40, "different_region"
	default:
		score, status = 50, "region_unknown"
	}

	return CriterionResult{
		Score:  round2(score),
		Status: status,
		Details: map[string]any{
			"is_remote":             false,
			"job_province_id":       *job.ProvinceID,
			"candidate_province_id": *cand.ProvinceID,
			"job_region":            string(jobRegion),
			"candidate_region":      string(candRegion),
		},
	}
}

func provinceIDValue(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
