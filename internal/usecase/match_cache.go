package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// MatchCache is the read-through cache used by match queries. The Redis
// implementation degrades to a no-op when the server is unreachable.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateMatchQueries(ctx context.Context) error
}

type topMatchesCacheKeyInput struct {
	JobID       *int64  `json:"job_id"`
	CandidateID *int64  `json:"candidate_id"`
	MinScore    float64 `json:"min_score"`
	Limit       int     `json:"limit"`
}

type insightsCacheKeyInput struct {
	JobID     *int64 `json:"job_id"`
	CompanyID *int64 `json:"company_id"`
}

func TopMatchesCacheKey(p TopMatchesParams) string {
	in := topMatchesCacheKeyInput{
		JobID:       p.JobID,
		CandidateID: p.CandidateID,
		MinScore:    defaultTopMinScore,
		Limit:       p.Limit,
	}
	if p.MinScore != nil {
		in.MinScore = *p.MinScore
	}
	return "matches:top:" + hashCacheKey(in)
}

func InsightsCacheKey(p InsightsParams) string {
	in := insightsCacheKeyInput{
		JobID:     p.JobID,
		CompanyID: p.CompanyID,
	}
	return "matches:insights:" + hashCacheKey(in)
}

func hashCacheKey(in any) string {
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
