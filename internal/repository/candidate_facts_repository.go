package repository

import (
	"context"
	"database/sql"
	"errors"

	"talent-match/internal/database"
	"talent-match/internal/domain/facts"

	"github.com/jackc/pgx/v5"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type CandidateFactsRepository interface {
	GetCandidateFacts(ctx context.Context, candidateID int64) (facts.CandidateFacts, error)
}

type PostgresCandidateFactsRepository struct {
	db database.DB
}

func NewPostgresCandidateFactsRepository(db database.DB) *PostgresCandidateFactsRepository {
	return &PostgresCandidateFactsRepository{db: db}
}

func (r *PostgresCandidateFactsRepository) GetCandidateFacts(ctx context.Context, candidateID int64) (facts.CandidateFacts, error) {
	var cf facts.CandidateFacts
	var education string

	err := r.db.QueryRow(ctx,
		`SELECT c.id, COALESCE(c.current_position, ''), COALESCE(c.bio, ''),
			COALESCE(c.years_of_experience, 0), COALESCE(c.highest_education_level, ''),
			c.province_id, COALESCE(p.code, ''),
			c.desired_salary_min, c.desired_salary_max, COALESCE(c.salary_currency, ''),
			COALESCE(c.education_summary, ''), COALESCE(c.experience_summary, '')
		 FROM candidates c
		 LEFT JOIN provinces p ON p.id = c.province_id
		 WHERE c.id = $1`,
		candidateID,
	).Scan(
		&cf.ID, &cf.CurrentPosition, &cf.Bio,
		&cf.YearsOfExperience, &education,
		&cf.ProvinceID, &cf.ProvinceCode,
		&cf.DesiredSalaryMin, &cf.DesiredSalaryMax, &cf.SalaryCurrency,
		&cf.EducationSummary, &cf.ExperienceSummary,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return facts.CandidateFacts{}, ErrCandidateNotFound
		}
		return facts.CandidateFacts{}, err
	}
	cf.HighestEducation = facts.EducationLevel(education)

	skills, err := r.candidateSkills(ctx, candidateID)
	if err != nil {
		return facts.CandidateFacts{}, err
	}
	cf.Skills = skills

	return cf, nil
}

func (r *PostgresCandidateFactsRepository) candidateSkills(ctx context.Context, candidateID int64) ([]facts.CandidateSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT cs.skill_id, s.name, COALESCE(cs.proficiency_level, 'intermediate')
		 FROM candidate_skills cs
		 JOIN skills s ON s.id = cs.skill_id
		 WHERE cs.candidate_id = $1
		 ORDER BY s.name ASC`,
		candidateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]facts.CandidateSkill, 0)
	for rows.Next() {
		var cs facts.CandidateSkill
		var prof string
		if err := rows.Scan(&cs.SkillID, &cs.SkillName, &prof); err != nil {
			return nil, err
		}
		cs.Proficiency = facts.Proficiency(prof)
		out = append(out, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
