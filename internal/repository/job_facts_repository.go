package repository

import (
	"context"
	"database/sql"
	"errors"

	"talent-match/internal/database"
	"talent-match/internal/domain/facts"

	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

// JobFactsRepository is one half of the entity reader: it projects the
// collaborator-owned job tables into the read-contract the calculators
// consume.
type JobFactsRepository interface {
	GetJobFacts(ctx context.Context, jobID int64) (facts.JobFacts, error)
}

type PostgresJobFactsRepository struct {
	db database.DB
}

func NewPostgresJobFactsRepository(db database.DB) *PostgresJobFactsRepository {
	return &PostgresJobFactsRepository{db: db}
}

func (r *PostgresJobFactsRepository) GetJobFacts(ctx context.Context, jobID int64) (facts.JobFacts, error) {
	var jf facts.JobFacts
	var level, jobType string

	err := r.db.QueryRow(ctx,
		`SELECT j.id, j.title, COALESCE(j.description, ''), COALESCE(j.requirements, ''),
			COALESCE(j.benefits, ''), COALESCE(j.level, ''), COALESCE(j.job_type, ''),
			COALESCE(j.experience_years_min, 0), j.experience_years_max,
			j.province_id, COALESCE(p.code, ''), j.is_remote,
			j.salary_min, j.salary_max, COALESCE(j.salary_currency, ''), j.is_salary_negotiable
		 FROM jobs j
		 LEFT JOIN provinces p ON p.id = j.province_id
		 WHERE j.id = $1`,
		jobID,
	).Scan(
		&jf.ID, &jf.Title, &jf.Description, &jf.Requirements,
		&jf.Benefits, &level, &jobType,
		&jf.ExperienceYearsMin, &jf.ExperienceYearsMax,
		&jf.ProvinceID, &jf.ProvinceCode, &jf.IsRemote,
		&jf.SalaryMin, &jf.SalaryMax, &jf.SalaryCurrency, &jf.IsSalaryNegotiable,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return facts.JobFacts{}, ErrJobNotFound
		}
		return facts.JobFacts{}, err
	}
	jf.Level = facts.JobLevel(level)
	jf.JobType = jobType

	skills, err := r.jobSkills(ctx, jobID)
	if err != nil {
		return facts.JobFacts{}, err
	}
	jf.Skills = skills

	return jf, nil
}

func (r *PostgresJobFactsRepository) jobSkills(ctx context.Context, jobID int64) ([]facts.JobSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT js.skill_id, s.name, COALESCE(js.proficiency_level, 'intermediate'), js.is_required
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = $1
		 ORDER BY s.name ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]facts.JobSkill, 0)
	for rows.Next() {
		var js facts.JobSkill
		var prof string
		if err := rows.Scan(&js.SkillID, &js.SkillName, &prof, &js.IsRequired); err != nil {
			return nil, err
		}
		js.Proficiency = facts.Proficiency(prof)
		out = append(out, js)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
