package dto

import (
	"encoding/json"
	"testing"

	"talent-match/internal/repository"
	"talent-match/internal/usecase"
)

func TestNewMatchInsightsResponse_NestedSections(t *testing.T) {
	jobID := int64(7)
	in := repository.MatchInsights{
		TotalMatches:       12,
		AvgOverallScore:    64.5,
		MaxOverallScore:    91,
		MinOverallScore:    22,
		AvgSkillScore:      70,
		AvgExperienceScore: 61,
		AvgEducationScore:  55,
		AvgLocationScore:   80,
		AvgSalaryScore:     48,
		HighMatches:        3,
		MediumMatches:      6,
		LowMatches:         3,
	}

	resp := NewMatchInsightsResponse(in, usecase.InsightsParams{JobID: &jobID})

	if resp.Summary.TotalMatches != 12 || resp.Summary.AvgOverallScore != 64.5 {
		t.Fatalf("unexpected summary: %+v", resp.Summary)
	}
	if resp.ScoreDistribution.High != 3 || resp.ScoreDistribution.Medium != 6 || resp.ScoreDistribution.Low != 3 {
		t.Fatalf("unexpected distribution: %+v", resp.ScoreDistribution)
	}
	if resp.ComponentAverages.Skill != 70 || resp.ComponentAverages.Salary != 48 {
		t.Fatalf("unexpected component averages: %+v", resp.ComponentAverages)
	}
	if resp.FiltersApplied.JobID == nil || *resp.FiltersApplied.JobID != 7 {
		t.Fatalf("job_id filter not echoed: %+v", resp.FiltersApplied)
	}
	if resp.FiltersApplied.CompanyID != nil {
		t.Fatalf("company_id should stay nil when not supplied")
	}
}

func TestMatchInsightsResponse_JSONShape(t *testing.T) {
	raw, err := json.Marshal(NewMatchInsightsResponse(repository.MatchInsights{}, usecase.InsightsParams{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"summary", "score_distribution", "component_averages", "filters_applied"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing top-level section %q in %s", key, raw)
		}
	}
}
