package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"talent-match/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrMatchScoreNotFound = errors.New("match score not found")

// MatchScore is one stored (job, candidate) compatibility row. The pair is
// unique; rows are invalidated on upstream change, never deleted by the
// engine.
type MatchScore struct {
	ID              int64
	JobID           int64
	CandidateID     int64
	OverallScore    float64
	SkillScore      float64
	ExperienceScore float64
	EducationScore  float64
	LocationScore   float64
	SalaryScore     float64
	SemanticScore   *float64
	Details         map[string]any
	IsValid         bool
	ComputedAt      time.Time
	InvalidatedAt   *time.Time
}

type MatchScoreUpsert struct {
	JobID           int64
	CandidateID     int64
	OverallScore    float64
	SkillScore      float64
	ExperienceScore float64
	EducationScore  float64
	LocationScore   float64
	SalaryScore     float64
	SemanticScore   *float64
	Details         map[string]any
}

type MatchScorePair struct {
	JobID       int64
	CandidateID int64
}

type MatchScoreListFilter struct {
	JobID       *int64
	CandidateID *int64
	ValidOnly   bool
	MinScore    float64
	Limit       int
}

type MatchInsightsFilter struct {
	JobID     *int64
	CompanyID *int64
}

type MatchInsights struct {
	TotalMatches    int64
	AvgOverallScore float64
	MaxOverallScore float64
	MinOverallScore float64

	AvgSkillScore      float64
	AvgExperienceScore float64
	AvgEducationScore  float64
	AvgLocationScore   float64
	AvgSalaryScore     float64

	HighMatches   int64
	MediumMatches int64
	LowMatches    int64
}

type MatchScoreRepository interface {
	Upsert(ctx context.Context, m MatchScoreUpsert) (MatchScore, error)
	Get(ctx context.Context, jobID, candidateID int64) (MatchScore, error)
	List(ctx context.Context, f MatchScoreListFilter) ([]MatchScore, error)
	PairsForJob(ctx context.Context, jobID int64) ([]MatchScorePair, error)
	PairsForCandidate(ctx context.Context, candidateID int64) ([]MatchScorePair, error)
	Insights(ctx context.Context, f MatchInsightsFilter) (MatchInsights, error)
	InvalidateByJob(ctx context.Context, jobID int64) (int64, error)
	InvalidateByCandidate(ctx context.Context, candidateID int64) (int64, error)
	InvalidateBySkill(ctx context.Context, skillID int64) (int64, error)
	MarkInvalid(ctx context.Context, jobID, candidateID int64) error
}

type PostgresMatchScoreRepository struct {
	db database.DB
}

func NewPostgresMatchScoreRepository(db database.DB) *PostgresMatchScoreRepository {
	return &PostgresMatchScoreRepository{db: db}
}

const matchScoreColumns = `id, job_id, candidate_id, overall_score, skill_score, experience_score,
	 education_score, location_score, salary_score, semantic_score, details, is_valid,
	 computed_at, invalidated_at`

func (r *PostgresMatchScoreRepository) Upsert(ctx context.Context, m MatchScoreUpsert) (MatchScore, error) {
	out, err := r.upsertOnce(ctx, m)
	if err != nil && isUniqueViolation(err) {
		// Lost a first-insert race; the conflict target exists now, retry once.
		out, err = r.upsertOnce(ctx, m)
	}
	return out, err
}

func (r *PostgresMatchScoreRepository) upsertOnce(ctx context.Context, m MatchScoreUpsert) (MatchScore, error) {
	detailsJSON, err := json.Marshal(m.Details)
	if err != nil {
		return MatchScore{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO match_scores (job_id, candidate_id, overall_score, skill_score, experience_score,
			education_score, location_score, salary_score, semantic_score, details, is_valid, computed_at, invalidated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,TRUE,now(),NULL)
		 ON CONFLICT (job_id, candidate_id) DO UPDATE SET
			overall_score = EXCLUDED.overall_score,
			skill_score = EXCLUDED.skill_score,
			experience_score = EXCLUDED.experience_score,
			education_score = EXCLUDED.education_score,
			location_score = EXCLUDED.location_score,
			salary_score = EXCLUDED.salary_score,
			semantic_score = EXCLUDED.semantic_score,
			details = EXCLUDED.details,
			is_valid = TRUE,
			computed_at = now(),
			invalidated_at = NULL
		 RETURNING `+matchScoreColumns,
		m.JobID, m.CandidateID, m.OverallScore, m.SkillScore, m.ExperienceScore,
		m.EducationScore, m.LocationScore, m.SalaryScore, m.SemanticScore, detailsJSON,
	)
	return scanMatchScore(row)
}

func (r *PostgresMatchScoreRepository) Get(ctx context.Context, jobID, candidateID int64) (MatchScore, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchScoreColumns+` FROM match_scores WHERE job_id = $1 AND candidate_id = $2`,
		jobID, candidateID,
	)
	ms, err := scanMatchScore(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return MatchScore{}, ErrMatchScoreNotFound
		}
		return MatchScore{}, err
	}
	return ms, nil
}

func (r *PostgresMatchScoreRepository) List(ctx context.Context, f MatchScoreListFilter) ([]MatchScore, error) {
	query := `SELECT ` + matchScoreColumns + ` FROM match_scores WHERE overall_score >= $1`
	args := []any{f.MinScore}
	if f.ValidOnly {
		query += ` AND is_valid = TRUE`
	}
	if f.JobID != nil {
		args = append(args, *f.JobID)
		query += ` AND job_id = $` + itoa(len(args))
	}
	if f.CandidateID != nil {
		args = append(args, *f.CandidateID)
		query += ` AND candidate_id = $` + itoa(len(args))
	}
	query += ` ORDER BY overall_score DESC, computed_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += ` LIMIT $` + itoa(len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MatchScore, 0)
	for rows.Next() {
		ms, err := scanMatchScore(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ms)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchScoreRepository) PairsForJob(ctx context.Context, jobID int64) ([]MatchScorePair, error) {
	return r.pairs(ctx, `SELECT job_id, candidate_id FROM match_scores WHERE job_id = $1 ORDER BY candidate_id`, jobID)
}

func (r *PostgresMatchScoreRepository) PairsForCandidate(ctx context.Context, candidateID int64) ([]MatchScorePair, error) {
	return r.pairs(ctx, `SELECT job_id, candidate_id FROM match_scores WHERE candidate_id = $1 ORDER BY job_id`, candidateID)
}

func (r *PostgresMatchScoreRepository) pairs(ctx context.Context, query string, arg any) ([]MatchScorePair, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MatchScorePair, 0)
	for rows.Next() {
		var p MatchScorePair
		if err := rows.Scan(&p.JobID, &p.CandidateID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchScoreRepository) Insights(ctx context.Context, f MatchInsightsFilter) (MatchInsights, error) {
	query := `SELECT COUNT(*),
		COALESCE(AVG(ms.overall_score), 0),
		COALESCE(MAX(ms.overall_score), 0),
		COALESCE(MIN(ms.overall_score), 0),
		COALESCE(AVG(ms.skill_score), 0),
		COALESCE(AVG(ms.experience_score), 0),
		COALESCE(AVG(ms.education_score), 0),
		COALESCE(AVG(ms.location_score), 0),
		COALESCE(AVG(ms.salary_score), 0),
		COUNT(*) FILTER (WHERE ms.overall_score >= 80),
		COUNT(*) FILTER (WHERE ms.overall_score >= 50 AND ms.overall_score < 80),
		COUNT(*) FILTER (WHERE ms.overall_score < 50)
	 FROM match_scores ms`
	args := []any{}
	if f.CompanyID != nil {
		query += ` JOIN jobs j ON j.id = ms.job_id`
	}
	query += ` WHERE ms.is_valid = TRUE`
	if f.JobID != nil {
		args = append(args, *f.JobID)
		query += ` AND ms.job_id = $` + itoa(len(args))
	}
	if f.CompanyID != nil {
		args = append(args, *f.CompanyID)
		query += ` AND j.company_id = $` + itoa(len(args))
	}

	var out MatchInsights
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&out.TotalMatches,
		&out.AvgOverallScore,
		&out.MaxOverallScore,
		&out.MinOverallScore,
		&out.AvgSkillScore,
		&out.AvgExperienceScore,
		&out.AvgEducationScore,
		&out.AvgLocationScore,
		&out.AvgSalaryScore,
		&out.HighMatches,
		&out.MediumMatches,
		&out.LowMatches,
	)
	if err != nil {
		return MatchInsights{}, err
	}
	return out, nil
}

func (r *PostgresMatchScoreRepository) InvalidateByJob(ctx context.Context, jobID int64) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE match_scores SET is_valid = FALSE, invalidated_at = now()
		 WHERE job_id = $1 AND is_valid = TRUE`,
		jobID,
	)
}

func (r *PostgresMatchScoreRepository) InvalidateByCandidate(ctx context.Context, candidateID int64) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE match_scores SET is_valid = FALSE, invalidated_at = now()
		 WHERE candidate_id = $1 AND is_valid = TRUE`,
		candidateID,
	)
}

// InvalidateBySkill flags every pair whose job requires the skill or whose
// candidate possesses it.
func (r *PostgresMatchScoreRepository) InvalidateBySkill(ctx context.Context, skillID int64) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE match_scores SET is_valid = FALSE, invalidated_at = now()
		 WHERE is_valid = TRUE AND (
			job_id IN (SELECT job_id FROM job_skills WHERE skill_id = $1)
			OR candidate_id IN (SELECT candidate_id FROM candidate_skills WHERE skill_id = $1)
		 )`,
		skillID,
	)
}

func (r *PostgresMatchScoreRepository) MarkInvalid(ctx context.Context, jobID, candidateID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE match_scores SET is_valid = FALSE, invalidated_at = now()
		 WHERE job_id = $1 AND candidate_id = $2`,
		jobID, candidateID,
	)
	return err
}

func scanMatchScore(row database.Row) (MatchScore, error) {
	var ms MatchScore
	var detailsJSON []byte
	err := row.Scan(
		&ms.ID, &ms.JobID, &ms.CandidateID, &ms.OverallScore, &ms.SkillScore,
		&ms.ExperienceScore, &ms.EducationScore, &ms.LocationScore, &ms.SalaryScore,
		&ms.SemanticScore, &detailsJSON, &ms.IsValid, &ms.ComputedAt, &ms.InvalidatedAt,
	)
	if err != nil {
		return MatchScore{}, err
	}
	if len(detailsJSON) > 0 {
		if err := json.Unmarshal(detailsJSON, &ms.Details); err != nil {
			return MatchScore{}, err
		}
	}
	return ms, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
