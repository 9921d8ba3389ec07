package alert

import (
	"testing"

	"talent-match/internal/domain/facts"
)

func int64Ptr(v int64) *int64     { return &v }
func floatPtr(v float64) *float64 { return &v }

func pythonJob() facts.JobFacts {
	return facts.JobFacts{
		ID:          10,
		Title:       "Python Developer",
		Description: "We build services in python and django",
		ProvinceID:  int64Ptr(7),
		SalaryMax:   floatPtr(20_000_000),
		Skills: []facts.JobSkill{
			{SkillID: 1, SkillName: "Python"},
			{SkillID: 2, SkillName: "Django"},
		},
	}
}

func TestCompositeScore_EmptyAlertEarnsEveryPortion(t *testing.T) {
	b := CompositeScore(Alert{}, pythonJob())
	if b.Keyword != 40 || b.Skill != 30 || b.Location != 20 || b.Salary != 10 {
		t.Fatalf("unexpected breakdown: %+v", b)
	}
	if b.Total() != 100 {
		t.Fatalf("expected 100, got %v", b.Total())
	}
}

func TestCompositeScore_PartialKeywordMatch(t *testing.T) {
	a := Alert{Keywords: "python, java"}
	b := CompositeScore(a, pythonJob())

	// One of two keywords matches: 40 * 1/2.
	if b.Keyword != 20 {
		t.Fatalf("keyword: expected 20, got %v", b.Keyword)
	}
	if b.Total() != 80 {
		t.Fatalf("expected composite 80, got %v", b.Total())
	}
	if b.Total() < IncludeThreshold {
		t.Fatalf("composite 80 must pass the threshold")
	}
}

func TestCompositeScore_KeywordsCaseInsensitive(t *testing.T) {
	a := Alert{Keywords: "PYTHON,  Django "}
	b := CompositeScore(a, pythonJob())
	if b.Keyword != 40 {
		t.Fatalf("expected 40, got %v", b.Keyword)
	}
}

func TestCompositeScore_SkillFraction(t *testing.T) {
	a := Alert{SkillIDs: []int64{1, 2, 3}}
	b := CompositeScore(a, pythonJob())
	if b.Skill != 20 {
		t.Fatalf("expected 20 (2 of 3), got %v", b.Skill)
	}
}

func TestCompositeScore_Location(t *testing.T) {
	job := pythonJob()

	match := CompositeScore(Alert{ProvinceIDs: []int64{7, 9}}, job)
	if match.Location != 20 {
		t.Fatalf("province intersect: expected 20, got %v", match.Location)
	}

	miss := CompositeScore(Alert{ProvinceIDs: []int64{9}}, job)
	if miss.Location != 0 {
		t.Fatalf("province miss: expected 0, got %v", miss.Location)
	}

	job.IsRemote = true
	remote := CompositeScore(Alert{ProvinceIDs: []int64{9}}, job)
	if remote.Location != 20 {
		t.Fatalf("remote job: expected 20, got %v", remote.Location)
	}
}

func TestCompositeScore_Salary(t *testing.T) {
	job := pythonJob()

	ok := CompositeScore(Alert{MinSalary: floatPtr(15_000_000)}, job)
	if ok.Salary != 10 {
		t.Fatalf("job max above alert min: expected 10, got %v", ok.Salary)
	}

	tooLow := CompositeScore(Alert{MinSalary: floatPtr(25_000_000)}, job)
	if tooLow.Salary != 0 {
		t.Fatalf("job max below alert min: expected 0, got %v", tooLow.Salary)
	}

	job.SalaryMax = nil
	open := CompositeScore(Alert{MinSalary: floatPtr(25_000_000)}, job)
	if open.Salary != 10 {
		t.Fatalf("open-ended job salary: expected 10, got %v", open.Salary)
	}
}

func TestIncludeThresholdBoundary(t *testing.T) {
	if 49.99 >= IncludeThreshold {
		t.Fatalf("49.99 must sit below the threshold")
	}
	if !(50.0 >= IncludeThreshold) {
		t.Fatalf("exactly 50 must pass")
	}
}
