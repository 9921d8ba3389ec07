package alert

import (
	"strings"

	"talent-match/internal/domain/facts"
)

// Alert is the read-only projection of a candidate's saved search. The
// matcher never mutates alerts; ownership stays with the CRUD layer.
type Alert struct {
	ID            int64
	CandidateID   int64
	Keywords      string
	ProvinceIDs   []int64
	SkillIDs      []int64
	MinSalary     *float64
	UseAIMatching bool
}

// Portion caps of the composite score. An alert that leaves a field empty
// earns that portion in full, which deliberately keeps single-field
// mismatches non-fatal.
const (
	keywordPoints  = 40.0
	skillPoints    = 30.0
	locationPoints = 20.0
	salaryPoints   = 10.0

	// IncludeThreshold is the composite cutoff; exactly 50 is included.
	IncludeThreshold = 50.0
)

type Breakdown struct {
	Keyword  float64
	Skill    float64
	Location float64
	Salary   float64
}

func (b Breakdown) Total() float64 {
	return b.Keyword + b.Skill + b.Location + b.Salary
}

// CompositeScore scores one alert against one job, 0-100.
func CompositeScore(a Alert, job facts.JobFacts) Breakdown {
	return Breakdown{
		Keyword:  keywordPortion(a.Keywords, job),
		Skill:    skillPortion(a.SkillIDs, job),
		Location: locationPortion(a.ProvinceIDs, job),
		Salary:   salaryPortion(a.MinSalary, job),
	}
}

func keywordPortion(keywords string, job facts.JobFacts) float64 {
	tokens := splitKeywords(keywords)
	if len(tokens) == 0 {
		return keywordPoints
	}
	haystack := strings.ToLower(job.Title + "\n" + job.Description + "\n" + job.Requirements)
	hits := 0
	for _, tok := range tokens {
		if strings.Contains(haystack, tok) {
			hits++
		}
	}
	return keywordPoints * float64(hits) / float64(len(tokens))
}

func skillPortion(alertSkillIDs []int64, job facts.JobFacts) float64 {
	if len(alertSkillIDs) == 0 {
		return skillPoints
	}
	jobSkills := make(map[int64]struct{}, len(job.Skills))
	for _, js := range job.Skills {
		jobSkills[js.SkillID] = struct{}{}
	}
	hits := 0
	for _, id := range alertSkillIDs {
		if _, ok := jobSkills[id]; ok {
			hits++
		}
	}
	return skillPoints * float64(hits) / float64(len(alertSkillIDs))
}

func locationPortion(provinceIDs []int64, job facts.JobFacts) float64 {
	if len(provinceIDs) == 0 {
		return locationPoints
	}
	if job.IsRemote {
		return locationPoints
	}
	if job.ProvinceID != nil {
		for _, id := range provinceIDs {
			if id == *job.ProvinceID {
				return locationPoints
			}
		}
	}
	return 0
}

// salaryPortion awards the full portion when the job leaves its upper bound
// open: an unbounded salary matches any alert minimum.
func salaryPortion(minSalary *float64, job facts.JobFacts) float64 {
	if minSalary == nil {
		return salaryPoints
	}
	if job.SalaryMax == nil {
		return salaryPoints
	}
	if *job.SalaryMax >= *minSalary {
		return salaryPoints
	}
	return 0
}

func splitKeywords(keywords string) []string {
	raw := strings.Split(keywords, ",")
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
