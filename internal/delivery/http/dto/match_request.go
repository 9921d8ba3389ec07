package dto

type CalculateMatchRequest struct {
	JobID       int64 `json:"job_id"`
	CandidateID int64 `json:"candidate_id"`
}

type BatchMatchRequest struct {
	JobID        int64   `json:"job_id"`
	CandidateIDs []int64 `json:"candidate_ids"`
}

type RefreshMatchRequest struct {
	JobID       *int64 `json:"job_id"`
	CandidateID *int64 `json:"candidate_id"`
}

type InvalidateMatchRequest struct {
	JobID       *int64 `json:"job_id"`
	CandidateID *int64 `json:"candidate_id"`
	SkillID     *int64 `json:"skill_id"`
}
