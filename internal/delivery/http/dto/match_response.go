package dto

import (
	"time"

	"talent-match/internal/repository"
	"talent-match/internal/usecase"
)

type MatchScoreResponse struct {
	ID              int64          `json:"id"`
	JobID           int64          `json:"job_id"`
	CandidateID     int64          `json:"candidate_id"`
	OverallScore    float64        `json:"overall_score"`
	SkillScore      float64        `json:"skill_score"`
	ExperienceScore float64        `json:"experience_score"`
	EducationScore  float64        `json:"education_score"`
	LocationScore   float64        `json:"location_score"`
	SalaryScore     float64        `json:"salary_score"`
	SemanticScore   *float64       `json:"semantic_score,omitempty"`
	Details         map[string]any `json:"matching_details"`
	IsValid         bool           `json:"is_valid"`
	ComputedAt      time.Time      `json:"computed_at"`
}

func NewMatchScoreResponse(m repository.MatchScore) MatchScoreResponse {
	return MatchScoreResponse{
		ID:              m.ID,
		JobID:           m.JobID,
		CandidateID:     m.CandidateID,
		OverallScore:    m.OverallScore,
		SkillScore:      m.SkillScore,
		ExperienceScore: m.ExperienceScore,
		EducationScore:  m.EducationScore,
		LocationScore:   m.LocationScore,
		SalaryScore:     m.SalaryScore,
		SemanticScore:   m.SemanticScore,
		Details:         m.Details,
		IsValid:         m.IsValid,
		ComputedAt:      m.ComputedAt,
	}
}

func NewMatchScoreResponses(ms []repository.MatchScore) []MatchScoreResponse {
	out := make([]MatchScoreResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewMatchScoreResponse(m))
	}
	return out
}

type BatchMatchResponse struct {
	Scores              []MatchScoreResponse `json:"scores"`
	SkippedCandidateIDs []int64              `json:"skipped_candidate_ids"`
	FailedCandidateIDs  []int64              `json:"failed_candidate_ids"`
}

type RefreshMatchResponse struct {
	Refreshed   int `json:"refreshed"`
	Invalidated int `json:"invalidated"`
}

type InvalidateMatchResponse struct {
	Invalidated int64 `json:"invalidated"`
}

type MatchInsightsSummary struct {
	TotalMatches    int64   `json:"total_matches"`
	AvgOverallScore float64 `json:"avg_overall_score"`
	MaxOverallScore float64 `json:"max_overall_score"`
	MinOverallScore float64 `json:"min_overall_score"`
}

// MatchScoreDistribution buckets stored matches: high >= 80,
// medium 50..79, low < 50.
type MatchScoreDistribution struct {
	High   int64 `json:"high"`
	Medium int64 `json:"medium"`
	Low    int64 `json:"low"`
}

type MatchComponentAverages struct {
	Skill      float64 `json:"skill"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Location   float64 `json:"location"`
	Salary     float64 `json:"salary"`
}

type MatchInsightsFilters struct {
	JobID     *int64 `json:"job_id"`
	CompanyID *int64 `json:"company_id"`
}

type MatchInsightsResponse struct {
	Summary           MatchInsightsSummary   `json:"summary"`
	ScoreDistribution MatchScoreDistribution `json:"score_distribution"`
	ComponentAverages MatchComponentAverages `json:"component_averages"`
	FiltersApplied    MatchInsightsFilters   `json:"filters_applied"`
}

func NewMatchInsightsResponse(in repository.MatchInsights, p usecase.InsightsParams) MatchInsightsResponse {
	return MatchInsightsResponse{
		Summary: MatchInsightsSummary{
			TotalMatches:    in.TotalMatches,
			AvgOverallScore: in.AvgOverallScore,
			MaxOverallScore: in.MaxOverallScore,
			MinOverallScore: in.MinOverallScore,
		},
		ScoreDistribution: MatchScoreDistribution{
			High:   in.HighMatches,
			Medium: in.MediumMatches,
			Low:    in.LowMatches,
		},
		ComponentAverages: MatchComponentAverages{
			Skill:      in.AvgSkillScore,
			Experience: in.AvgExperienceScore,
			Education:  in.AvgEducationScore,
			Location:   in.AvgLocationScore,
			Salary:     in.AvgSalaryScore,
		},
		FiltersApplied: MatchInsightsFilters{
			JobID:     p.JobID,
			CompanyID: p.CompanyID,
		},
	}
}
