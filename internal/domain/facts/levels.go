package facts

type Proficiency string

const (
	ProficiencyBasic        Proficiency = "basic"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

var proficiencyRanks = map[Proficiency]int{
	ProficiencyBasic:        1,
	ProficiencyIntermediate: 2,
	ProficiencyAdvanced:     3,
	ProficiencyExpert:       4,
}

// Rank maps a proficiency onto the 1..4 ladder. Unknown values are treated
// as intermediate.
func (p Proficiency) Rank() int {
	if r, ok := proficiencyRanks[p]; ok {
		return r
	}
	return proficiencyRanks[ProficiencyIntermediate]
}

type EducationLevel string

const (
	EducationHighSchool EducationLevel = "high_school"
	EducationVocational EducationLevel = "vocational"
	EducationCollege    EducationLevel = "college"
	EducationBachelor   EducationLevel = "bachelor"
	EducationMaster     EducationLevel = "master"
	EducationPhD        EducationLevel = "phd"
	EducationOther      EducationLevel = "other"
)

var educationRanks = map[EducationLevel]int{
	EducationHighSchool: 1,
	EducationVocational: 2,
	EducationCollege:    3,
	EducationBachelor:   4,
	EducationMaster:     5,
	EducationPhD:        6,
	EducationOther:      2,
}

// Rank maps an education level onto the 1..6 ladder. Empty means unknown
// and ranks 0; unrecognized non-empty values rank as vocational.
func (e EducationLevel) Rank() int {
	if e == "" {
		return 0
	}
	if r, ok := educationRanks[e]; ok {
		return r
	}
	return educationRanks[EducationVocational]
}

type JobLevel string

const (
	LevelIntern   JobLevel = "intern"
	LevelFresher  JobLevel = "fresher"
	LevelJunior   JobLevel = "junior"
	LevelMiddle   JobLevel = "middle"
	LevelSenior   JobLevel = "senior"
	LevelLead     JobLevel = "lead"
	LevelManager  JobLevel = "manager"
	LevelDirector JobLevel = "director"
)

var levelEducation = map[JobLevel]EducationLevel{
	LevelIntern:   EducationCollege,
	LevelFresher:  EducationBachelor,
	LevelJunior:   EducationBachelor,
	LevelMiddle:   EducationBachelor,
	LevelSenior:   EducationBachelor,
	LevelLead:     EducationBachelor,
	LevelManager:  EducationBachelor,
	LevelDirector: EducationMaster,
}

// RequiredEducation infers the education requirement from the job level.
// Jobs carry no explicit required-education field, so this heuristic stands
// in; prefer an explicit field if one is ever added.
func (l JobLevel) RequiredEducation() EducationLevel {
	if e, ok := levelEducation[l]; ok {
		return e
	}
	return EducationBachelor
}
