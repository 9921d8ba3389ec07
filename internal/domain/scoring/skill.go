package scoring

import (
	"talent-match/internal/domain/facts"
)

const (
	requiredSkillWeight = 2.0
	optionalSkillWeight = 1.0
)

// SkillScore scores the candidate's skill set against the job's required
// skills. Required skills weigh double; a candidate below the required
// proficiency earns proportional credit; a job without skill requirements
// matches everyone.
func SkillScore(job facts.JobFacts, cand facts.CandidateFacts) CriterionResult {
	if len(job.Skills) == 0 {
		return CriterionResult{
			Score:  100,
			Status: "no_requirements",
			Details: map[string]any{
				"total_job_skills": 0,
				"total_matched":    0,
			},
		}
	}

	candBySkillID := make(map[int64]facts.CandidateSkill, len(cand.Skills))
	for _, cs := range cand.Skills {
		candBySkillID[cs.SkillID] = cs
	}

	var totalPoints, maxPoints float64
	matched := make([]map[string]any, 0, len(job.Skills))
	missing := make([]map[string]any, 0)
	requiredMatched := 0
	requiredMissing := 0

	for _, js := range job.Skills {
		weight := optionalSkillWeight
		if js.IsRequired {
			weight = requiredSkillWeight
		}
		maxSkillPoints := weight * 100
		maxPoints += maxSkillPoints

		cs, ok := candBySkillID[js.SkillID]
		if !ok {
			if js.IsRequired {
				requiredMissing++
			}
			missing = append(missing, map[string]any{
				"skill_id":    js.SkillID,
				"skill_name":  js.SkillName,
				"is_required": js.IsRequired,
			})
			continue
		}

		reqRank := js.Proficiency.Rank()
		candRank := cs.Proficiency.Rank()
		points := maxSkillPoints
		if candRank < reqRank {
			points = maxSkillPoints * float64(candRank) / float64(reqRank)
		}
		totalPoints += points
		if js.IsRequired {
			requiredMatched++
		}
		matched = append(matched, map[string]any{
			"skill_id":              js.SkillID,
			"skill_name":            js.SkillName,
			"required_proficiency":  string(js.Proficiency),
			"candidate_proficiency": string(cs.Proficiency),
			"is_required":           js.IsRequired,
			"points_earned":         round2(points),
			"max_points":            maxSkillPoints,
		})
	}

	score := round2(clampScore(totalPoints / maxPoints * 100))

	status := "partial_match"
	switch {
	case len(missing) == 0 && score >= 100:
		status = "full_match"
	case len(matched) == 0:
		status = "no_match"
	}

	return CriterionResult{
		Score:  score,
		Status: status,
		Details: map[string]any{
			"total_job_skills": len(job.Skills),
			"total_matched":    len(matched),
			"total_missing":    len(missing),
			"required_matched": requiredMatched,
			"required_missing": requiredMissing,
			"matched_skills":   matched,
			"missing_skills":   missing,
			"total_points":     round2(totalPoints),
			"max_points":       round2(maxPoints),
		},
	}
}
