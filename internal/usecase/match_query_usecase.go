package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"talent-match/internal/repository"
)

const (
	defaultTopMinScore = 50.0
	defaultTopLimit    = 10
	maxTopLimit        = 100

	queryCacheTTL = 5 * time.Minute
)

// MatchQueryUsecase serves read paths over stored match scores.
type MatchQueryUsecase interface {
	GetMatch(ctx context.Context, jobID, candidateID int64) (repository.MatchScore, error)
	TopMatches(ctx context.Context, p TopMatchesParams) ([]repository.MatchScore, error)
	Insights(ctx context.Context, p InsightsParams) (repository.MatchInsights, error)
}

// TopMatchesParams filters the top-match listing. A nil MinScore means
// the default threshold; zero is a legitimate "show everything" request.
type TopMatchesParams struct {
	JobID       *int64
	CandidateID *int64
	MinScore    *float64
	Limit       int
}

type InsightsParams struct {
	JobID     *int64
	CompanyID *int64
}

type MatchQuery struct {
	scores repository.MatchScoreRepository
	cache  MatchCache
	logger *log.Logger
}

func NewMatchQueryUsecase(scores repository.MatchScoreRepository, cache MatchCache, logger *log.Logger) *MatchQuery {
	return &MatchQuery{scores: scores, cache: cache, logger: logger}
}

func (u *MatchQuery) GetMatch(ctx context.Context, jobID, candidateID int64) (repository.MatchScore, error) {
	if jobID <= 0 || candidateID <= 0 {
		return repository.MatchScore{}, ErrInvalidInput
	}
	m, err := u.scores.Get(ctx, jobID, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrMatchScoreNotFound) {
			return repository.MatchScore{}, ErrMatchNotFound
		}
		return repository.MatchScore{}, ErrInternal
	}
	return m, nil
}

func (u *MatchQuery) TopMatches(ctx context.Context, p TopMatchesParams) ([]repository.MatchScore, error) {
	if p.MinScore != nil && (*p.MinScore < 0 || *p.MinScore > 100) {
		return nil, ErrInvalidInput
	}
	if p.MinScore == nil {
		threshold := defaultTopMinScore
		p.MinScore = &threshold
	}
	if p.Limit <= 0 {
		p.Limit = defaultTopLimit
	}
	if p.Limit > maxTopLimit {
		p.Limit = maxTopLimit
	}

	key := TopMatchesCacheKey(p)
	if u.cache != nil {
		var cached []repository.MatchScore
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	list, err := u.scores.List(ctx, repository.MatchScoreListFilter{
		JobID:       p.JobID,
		CandidateID: p.CandidateID,
		ValidOnly:   true,
		MinScore:    *p.MinScore,
		Limit:       p.Limit,
	})
	if err != nil {
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, list, queryCacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("[Matching] Cache write failed | key=%s error=%v", key, err)
		}
	}
	return list, nil
}

func (u *MatchQuery) Insights(ctx context.Context, p InsightsParams) (repository.MatchInsights, error) {
	key := InsightsCacheKey(p)
	if u.cache != nil {
		var cached repository.MatchInsights
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	insights, err := u.scores.Insights(ctx, repository.MatchInsightsFilter{
		JobID:     p.JobID,
		CompanyID: p.CompanyID,
	})
	if err != nil {
		return repository.MatchInsights{}, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, insights, queryCacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("[Matching] Cache write failed | key=%s error=%v", key, err)
		}
	}
	return insights, nil
}
