package dto

import "talent-match/internal/usecase"

type AlertMatchResponse struct {
	AlertID        int64   `json:"alert_id"`
	CandidateID    int64   `json:"candidate_id"`
	CompositeScore float64 `json:"composite_score"`
	KeywordScore   float64 `json:"keyword_score"`
	SkillScore     float64 `json:"skill_score"`
	LocationScore  float64 `json:"location_score"`
	SalaryScore    float64 `json:"salary_score"`
}

type AlertMatchListResponse struct {
	JobID   int64                `json:"job_id"`
	Matches []AlertMatchResponse `json:"matches"`
}

func NewAlertMatchListResponse(jobID int64, matches []usecase.AlertMatchResult) AlertMatchListResponse {
	out := AlertMatchListResponse{JobID: jobID, Matches: make([]AlertMatchResponse, 0, len(matches))}
	for _, m := range matches {
		out.Matches = append(out.Matches, AlertMatchResponse{
			AlertID:        m.AlertID,
			CandidateID:    m.CandidateID,
			CompositeScore: m.Composite,
			KeywordScore:   m.Breakdown.Keyword,
			SkillScore:     m.Breakdown.Skill,
			LocationScore:  m.Breakdown.Location,
			SalaryScore:    m.Breakdown.Salary,
		})
	}
	return out
}
