package scoring

import (
	"testing"

	"talent-match/internal/domain/facts"
)

func intPtr(v int) *int { return &v }

func TestExperienceScore_BoundedRange(t *testing.T) {
	cases := []struct {
		name       string
		min        int
		max        int
		cand       int
		wantScore  float64
		wantStatus string
	}{
		{"in range", 2, 5, 3, 100, "perfect_fit"},
		{"at min", 2, 5, 2, 100, "perfect_fit"},
		{"at max", 2, 5, 5, 100, "perfect_fit"},
		{"under by one", 2, 5, 1, 85, "slightly_under"},
		{"under by two", 2, 5, 0, 70, "under_requirement"},
		{"far under", 5, 8, 0, 20, "significantly_under"},
		{"far under proportional", 10, 12, 6, 30, "significantly_under"},
		{"over by two", 2, 4, 6, 90, "slightly_over"},
		{"over by five", 2, 4, 9, 75, "over_qualified"},
		{"far over", 2, 4, 10, 60, "significantly_over"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			job := facts.JobFacts{ExperienceYearsMin: tc.min, ExperienceYearsMax: intPtr(tc.max)}
			cand := facts.CandidateFacts{YearsOfExperience: tc.cand}
			res := ExperienceScore(job, cand)
			if res.Score != tc.wantScore {
				t.Fatalf("score: expected %v, got %v", tc.wantScore, res.Score)
			}
			if res.Status != tc.wantStatus {
				t.Fatalf("status: expected %s, got %s", tc.wantStatus, res.Status)
			}
		})
	}
}

func TestExperienceScore_OpenEnded(t *testing.T) {
	cases := []struct {
		name       string
		min        int
		cand       int
		wantScore  float64
		wantStatus string
	}{
		{"meets", 3, 5, 100, "meets_requirement"},
		{"under by one", 3, 2, 85, "slightly_under"},
		{"under by two", 3, 1, 70, "under_requirement"},
		{"far under floor", 6, 0, 30, "significantly_under"},
		{"far under proportional", 10, 7, 42, "significantly_under"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			job := facts.JobFacts{ExperienceYearsMin: tc.min}
			cand := facts.CandidateFacts{YearsOfExperience: tc.cand}
			res := ExperienceScore(job, cand)
			if res.Score != tc.wantScore {
				t.Fatalf("score: expected %v, got %v", tc.wantScore, res.Score)
			}
			if res.Status != tc.wantStatus {
				t.Fatalf("status: expected %s, got %s", tc.wantStatus, res.Status)
			}
		})
	}
}
