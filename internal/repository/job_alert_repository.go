package repository

import (
	"context"

	"talent-match/internal/database"
	"talent-match/internal/domain/alert"
)

// JobAlertRepository reads candidate saved searches for the alert matcher.
// Alerts are owned by the CRUD layer; this repository is strictly read-only
// and only surfaces alerts whose owner is still open to offers.
type JobAlertRepository interface {
	ListActiveForMatching(ctx context.Context) ([]alert.Alert, error)
}

type PostgresJobAlertRepository struct {
	db database.DB
}

func NewPostgresJobAlertRepository(db database.DB) *PostgresJobAlertRepository {
	return &PostgresJobAlertRepository{db: db}
}

func (r *PostgresJobAlertRepository) ListActiveForMatching(ctx context.Context) ([]alert.Alert, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.candidate_id, COALESCE(a.keywords, ''), a.min_salary, a.use_ai_matching
		 FROM job_alerts a
		 JOIN candidates c ON c.id = a.candidate_id
		 WHERE a.is_active = TRUE
		   AND c.job_search_status IN ('active', 'passive')
		 ORDER BY a.id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := make([]alert.Alert, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var a alert.Alert
		if err := rows.Scan(&a.ID, &a.CandidateID, &a.Keywords, &a.MinSalary, &a.UseAIMatching); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(alerts) == 0 {
		return alerts, nil
	}

	provinces, err := r.alertIDSet(ctx,
		`SELECT alert_id, province_id FROM job_alert_provinces WHERE alert_id = ANY($1) ORDER BY province_id`, ids)
	if err != nil {
		return nil, err
	}
	skills, err := r.alertIDSet(ctx,
		`SELECT alert_id, skill_id FROM job_alert_skills WHERE alert_id = ANY($1) ORDER BY skill_id`, ids)
	if err != nil {
		return nil, err
	}

	for i := range alerts {
		alerts[i].ProvinceIDs = provinces[alerts[i].ID]
		alerts[i].SkillIDs = skills[alerts[i].ID]
	}
	return alerts, nil
}

func (r *PostgresJobAlertRepository) alertIDSet(ctx context.Context, query string, alertIDs []int64) (map[int64][]int64, error) {
	rows, err := r.db.Query(ctx, query, alertIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]int64)
	for rows.Next() {
		var alertID, refID int64
		if err := rows.Scan(&alertID, &refID); err != nil {
			return nil, err
		}
		out[alertID] = append(out[alertID], refID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
