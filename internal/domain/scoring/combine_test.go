package scoring

import (
	"context"
	"errors"
	"testing"

	"talent-match/internal/domain/facts"
)

func perfectFitJob() facts.JobFacts {
	return facts.JobFacts{
		ID:                 1,
		Title:              "Backend Developer",
		Level:              facts.LevelJunior,
		ExperienceYearsMin: 2,
		ExperienceYearsMax: intPtr(5),
		ProvinceID:         int64Ptr(7),
		ProvinceCode:       "ho_chi_minh",
		SalaryMin:          floatPtr(10_000_000),
		SalaryMax:          floatPtr(20_000_000),
		Skills: []facts.JobSkill{
			{SkillID: 1, SkillName: "Python", Proficiency: facts.ProficiencyIntermediate, IsRequired: true},
		},
	}
}

func perfectFitCandidate() facts.CandidateFacts {
	return facts.CandidateFacts{
		ID:                2,
		YearsOfExperience: 3,
		HighestEducation:  facts.EducationBachelor,
		ProvinceID:        int64Ptr(7),
		ProvinceCode:      "ho_chi_minh",
		DesiredSalaryMin:  floatPtr(12_000_000),
		DesiredSalaryMax:  floatPtr(18_000_000),
		Skills: []facts.CandidateSkill{
			{SkillID: 1, SkillName: "Python", Proficiency: facts.ProficiencyAdvanced},
		},
	}
}

func basicBreakdown(job facts.JobFacts, cand facts.CandidateFacts) Breakdown {
	skill := SkillScore(job, cand)
	exp := ExperienceScore(job, cand)
	edu := EducationScore(job, cand)
	loc := LocationScore(job, cand)
	sal := SalaryScore(job, cand)
	sem := SemanticScore(context.Background(), nil, job, cand)
	return Combine(skill, exp, edu, loc, sal, sem)
}

func TestCombine_PerfectFit(t *testing.T) {
	b := basicBreakdown(perfectFitJob(), perfectFitCandidate())

	if b.Overall != 100 {
		t.Fatalf("expected overall 100, got %v", b.Overall)
	}
	if b.SemanticEnabled {
		t.Fatalf("expected basic profile without a provider")
	}
	for name, r := range map[string]CriterionResult{
		"skill": b.Skill, "experience": b.Experience, "education": b.Education,
		"location": b.Location, "salary": b.Salary,
	} {
		if r.Score != 100 {
			t.Fatalf("criterion %s: expected 100, got %v", name, r.Score)
		}
	}
}

func TestCombine_GapCandidate(t *testing.T) {
	job := perfectFitJob()
	job.ExperienceYearsMin = 5
	job.ExperienceYearsMax = intPtr(8)

	cand := facts.CandidateFacts{
		ID:                2,
		YearsOfExperience: 0,
		HighestEducation:  facts.EducationHighSchool,
		ProvinceID:        int64Ptr(1),
		ProvinceCode:      "ha_noi",
		DesiredSalaryMin:  floatPtr(30_000_000),
		DesiredSalaryMax:  floatPtr(40_000_000),
	}

	b := basicBreakdown(job, cand)

	if b.Skill.Score != 0 {
		t.Fatalf("skill: expected 0, got %v", b.Skill.Score)
	}
	if b.Experience.Score != 20 || b.Experience.Status != "significantly_under" {
		t.Fatalf("experience: expected 20/significantly_under, got %v/%s", b.Experience.Score, b.Experience.Status)
	}
	if b.Education.Score != 30 {
		t.Fatalf("education: expected 30, got %v", b.Education.Score)
	}
	if b.Location.Score != 40 {
		t.Fatalf("location: expected 40, got %v", b.Location.Score)
	}
	if b.Salary.Score != 20 {
		t.Fatalf("salary: expected 20, got %v", b.Salary.Score)
	}

	// 0*0.35 + 20*0.25 + 30*0.15 + 40*0.10 + 20*0.15
	if b.Overall != 16.5 {
		t.Fatalf("expected overall 16.5, got %v", b.Overall)
	}
}

func TestCombine_SemanticProfileOnlyWhenReal(t *testing.T) {
	allHundred := CriterionResult{Score: 100, Status: "x"}

	withSemantic := Combine(allHundred, allHundred, allHundred, allHundred, allHundred,
		SemanticResult{CriterionResult: CriterionResult{Score: 60, Status: "success"}, IsSemantic: true})
	if !withSemantic.SemanticEnabled {
		t.Fatalf("expected semantic profile")
	}
	// 75 weighted at 1.00 total: 100*(0.75) + 60*0.25 = 90.
	if withSemantic.Overall != 90 {
		t.Fatalf("expected 90, got %v", withSemantic.Overall)
	}

	degraded := Combine(allHundred, allHundred, allHundred, allHundred, allHundred,
		SemanticResult{CriterionResult: CriterionResult{Score: 50, Status: "embedding_failed"}})
	if degraded.SemanticEnabled {
		t.Fatalf("degraded semantic must not switch profiles")
	}
	if degraded.Overall != 100 {
		t.Fatalf("expected 100 under basic profile, got %v", degraded.Overall)
	}
}

func TestCombine_MatchingDetailsShape(t *testing.T) {
	b := basicBreakdown(perfectFitJob(), perfectFitCandidate())
	details := b.MatchingDetails()

	for _, key := range []string{"skill", "experience", "education", "location", "salary", "weights", "semantic_enabled"} {
		if _, ok := details[key]; !ok {
			t.Fatalf("missing details key %q", key)
		}
	}
	if _, ok := details["semantic"]; ok {
		t.Fatalf("semantic key must be absent when disabled")
	}
	if enabled, _ := details["semantic_enabled"].(bool); enabled {
		t.Fatalf("semantic_enabled should be false")
	}
}

func TestGuard_RecoversPanic(t *testing.T) {
	res := Guard(func() CriterionResult { panic("boom") })
	if res.Score != 50 || res.Status != StatusError {
		t.Fatalf("expected 50/error, got %v/%s", res.Score, res.Status)
	}
}

func TestValidateProfiles(t *testing.T) {
	if err := ValidateProfiles(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	bad := Weights{Skill: 0.5, Experience: 0.6}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected sum error")
	}
	negative := Weights{Skill: -0.1, Experience: 1.1}
	if err := negative.Validate(); err == nil {
		t.Fatalf("expected negative weight error")
	}
}

type stubProvider struct {
	vecs map[string][]float32
	err  error
}

func (s stubProvider) Embed(_ context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vecs[text]; ok {
		return v, nil
	}
	return []float32{1, 0}, nil
}

func TestSemanticScore_Disabled(t *testing.T) {
	res := SemanticScore(context.Background(), nil, perfectFitJob(), perfectFitCandidate())
	if res.IsSemantic {
		t.Fatalf("nil provider must not produce a semantic result")
	}
	if res.Status != "disabled" {
		t.Fatalf("expected disabled, got %s", res.Status)
	}
}

func TestSemanticScore_EmbeddingFailure(t *testing.T) {
	res := SemanticScore(context.Background(), stubProvider{err: errors.New("quota")}, perfectFitJob(), perfectFitCandidate())
	if res.IsSemantic {
		t.Fatalf("failed embedding must degrade")
	}
	if res.Score != 50 || res.Status != "embedding_failed" {
		t.Fatalf("expected 50/embedding_failed, got %v/%s", res.Score, res.Status)
	}
}

func TestSemanticScore_IdenticalVectors(t *testing.T) {
	res := SemanticScore(context.Background(), stubProvider{}, perfectFitJob(), perfectFitCandidate())
	if !res.IsSemantic {
		t.Fatalf("expected a real semantic result")
	}
	if res.Score != 100 || res.Status != "success" {
		t.Fatalf("expected 100/success, got %v/%s", res.Score, res.Status)
	}
}

func TestSemanticScore_InsufficientText(t *testing.T) {
	res := SemanticScore(context.Background(), stubProvider{}, facts.JobFacts{}, perfectFitCandidate())
	if res.IsSemantic {
		t.Fatalf("empty job text must degrade")
	}
	if res.Status != "insufficient_data" {
		t.Fatalf("expected insufficient_data, got %s", res.Status)
	}
}
