package scoring

// Breakdown is the combined outcome for one (job, candidate) pair: the
// overall weighted score, the per-criterion results, and the weight profile
// that produced it.
type Breakdown struct {
	Overall float64

	Skill      CriterionResult
	Experience CriterionResult
	Education  CriterionResult
	Location   CriterionResult
	Salary     CriterionResult
	Semantic   SemanticResult

	Weights         Weights
	SemanticEnabled bool
}

// Combine applies the active weight profile. The semantic profile is used
// only when the semantic calculator produced a real similarity; a disabled
// or degraded semantic result never leaks into the basic profile.
func Combine(skill, experience, education, location, salary CriterionResult, semantic SemanticResult) Breakdown {
	weights := BasicProfile
	if semantic.IsSemantic {
		weights = SemanticProfile
	}

	overall := weights.Skill*skill.Score +
		weights.Experience*experience.Score +
		weights.Education*education.Score +
		weights.Location*location.Score +
		weights.Salary*salary.Score
	if semantic.IsSemantic {
		overall += weights.Semantic * semantic.Score
	}

	return Breakdown{
		Overall:         round2(clampScore(overall)),
		Skill:           skill,
		Experience:      experience,
		Education:       education,
		Location:        location,
		Salary:          salary,
		Semantic:        semantic,
		Weights:         weights,
		SemanticEnabled: semantic.IsSemantic,
	}
}

// MatchingDetails flattens the breakdown into the JSON shape persisted in
// the score store.
func (b Breakdown) MatchingDetails() map[string]any {
	details := map[string]any{
		"skill":            criterionMap(b.Skill),
		"experience":       criterionMap(b.Experience),
		"education":        criterionMap(b.Education),
		"location":         criterionMap(b.Location),
		"salary":           criterionMap(b.Salary),
		"weights":          b.Weights.toMap(b.SemanticEnabled),
		"semantic_enabled": b.SemanticEnabled,
	}
	if b.SemanticEnabled {
		details["semantic"] = criterionMap(b.Semantic.CriterionResult)
	}
	return details
}

func criterionMap(r CriterionResult) map[string]any {
	m := map[string]any{
		"score":  r.Score,
		"status": r.Status,
	}
	for k, v := range r.Details {
		if k == "score" || k == "status" {
			continue
		}
		m[k] = v
	}
	return m
}
