package facts

// Package facts holds the read-contract projections of jobs and candidates.
// The matching core never touches the collaborator CRUD entities directly;
// repositories materialize these structs and the calculators stay pure.

type JobSkill struct {
	SkillID     int64
	SkillName   string
	Proficiency Proficiency
	IsRequired  bool
}

type JobFacts struct {
	ID           int64
	Title        string
	Description  string
	Requirements string
	Benefits     string
	Level        JobLevel
	JobType      string

	ExperienceYearsMin int
	ExperienceYearsMax *int

	ProvinceID   *int64
	ProvinceCode string
	IsRemote     bool

	SalaryMin          *float64
	SalaryMax          *float64
	SalaryCurrency     string
	IsSalaryNegotiable bool

	Skills []JobSkill
}

type CandidateSkill struct {
	SkillID     int64
	SkillName   string
	Proficiency Proficiency
}

type CandidateFacts struct {
	ID                int64
	CurrentPosition   string
	Bio               string
	YearsOfExperience int
	HighestEducation  EducationLevel

	ProvinceID   *int64
	ProvinceCode string

	DesiredSalaryMin *float64
	DesiredSalaryMax *float64
	SalaryCurrency   string

	EducationSummary  string
	ExperienceSummary string

	Skills []CandidateSkill
}
