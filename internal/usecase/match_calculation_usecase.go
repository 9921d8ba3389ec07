package usecase

import (
	"context"
	"errors"
	"log"

	"talent-match/internal/domain/facts"
	"talent-match/internal/domain/scoring"
	"talent-match/internal/pkg/workerpool"
	"talent-match/internal/repository"
)

const maxBatchCandidates = 100

// MatchCalculationUsecase computes and persists compatibility scores for
// (job, candidate) pairs.
type MatchCalculationUsecase interface {
	CalculateSingle(ctx context.Context, jobID, candidateID int64) (repository.MatchScore, error)
	BatchCalculate(ctx context.Context, jobID int64, candidateIDs []int64) (BatchResult, error)
	Refresh(ctx context.Context, sel RefreshSelector) (RefreshResult, error)
	Invalidate(ctx context.Context, scope InvalidateScope) (int64, error)
}

type BatchResult struct {
	Scores []repository.MatchScore
	// SkippedCandidateIDs lists candidates that no longer exist.
	SkippedCandidateIDs []int64
	// FailedCandidateIDs lists candidates whose computation or store
	// failed; the rest of the batch is unaffected.
	FailedCandidateIDs []int64
}

// RefreshSelector picks a fan-out side. Exactly one field must be set.
type RefreshSelector struct {
	JobID       *int64
	CandidateID *int64
}

type RefreshResult struct {
	Refreshed   int
	Invalidated int
}

// InvalidateScope picks what changed upstream. Exactly one field must be set.
type InvalidateScope struct {
	JobID       *int64
	CandidateID *int64
	SkillID     *int64
}

type MatchCalculation struct {
	jobs        repository.JobFactsRepository
	candidates  repository.CandidateFactsRepository
	scores      repository.MatchScoreRepository
	embedder    scoring.Provider
	cache       MatchCache
	logger      *log.Logger
	concurrency int
}

func NewMatchCalculationUsecase(
	jobs repository.JobFactsRepository,
	candidates repository.CandidateFactsRepository,
	scores repository.MatchScoreRepository,
	embedder scoring.Provider,
	cache MatchCache,
	logger *log.Logger,
	concurrency int,
) *MatchCalculation {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &MatchCalculation{
		jobs:        jobs,
		candidates:  candidates,
		scores:      scores,
		embedder:    embedder,
		cache:       cache,
		logger:      logger,
		concurrency: concurrency,
	}
}

func (u *MatchCalculation) CalculateSingle(ctx context.Context, jobID, candidateID int64) (repository.MatchScore, error) {
	if jobID <= 0 || candidateID <= 0 {
		return repository.MatchScore{}, ErrInvalidInput
	}

	job, err := u.jobs.GetJobFacts(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.MatchScore{}, ErrJobNotFound
		}
		return repository.MatchScore{}, ErrInternal
	}
	cand, err := u.candidates.GetCandidateFacts(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return repository.MatchScore{}, ErrCandidateNotFound
		}
		return repository.MatchScore{}, ErrInternal
	}

	stored, err := u.computeAndStore(ctx, job, cand)
	if err != nil {
		return repository.MatchScore{}, ErrInternal
	}
	u.bustQueryCache(ctx)
	return stored, nil
}

func (u *MatchCalculation) BatchCalculate(ctx context.Context, jobID int64, candidateIDs []int64) (BatchResult, error) {
	if jobID <= 0 {
		return BatchResult{}, ErrInvalidInput
	}
	if len(candidateIDs) == 0 || len(candidateIDs) > maxBatchCandidates {
		return BatchResult{}, ErrInvalidInput
	}

	job, err := u.jobs.GetJobFacts(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return BatchResult{}, ErrJobNotFound
		}
		return BatchResult{}, ErrInternal
	}

	ids := dedupeIDs(candidateIDs)

	type slot struct {
		score   repository.MatchScore
		ok      bool
		skipped bool
		failed  bool
	}
	slots := make([]slot, len(ids))

	pool := workerpool.New(u.concurrency, len(ids))
	done := pool.Run(ctx)
	for i, candidateID := range ids {
		pool.Submit(func(taskCtx context.Context) error {
			cand, err := u.candidates.GetCandidateFacts(taskCtx, candidateID)
			if err != nil {
				if errors.Is(err, repository.ErrCandidateNotFound) {
					slots[i].skipped = true
					return nil
				}
				slots[i].failed = true
				return err
			}
			stored, err := u.computeAndStore(taskCtx, job, cand)
			if err != nil {
				slots[i].failed = true
				return err
			}
			slots[i].score = stored
			slots[i].ok = true
			return nil
		})
	}
	pool.Close()
	for res := range done {
		if res.Err != nil && u.logger != nil {
			u.logger.Printf("[Matching] Batch item failed | job_id=%d error=%v", jobID, res.Err)
		}
	}

	out := BatchResult{Scores: make([]repository.MatchScore, 0, len(ids))}
	for i, s := range slots {
		switch {
		case s.ok:
			out.Scores = append(out.Scores, s.score)
		case s.skipped:
			out.SkippedCandidateIDs = append(out.SkippedCandidateIDs, ids[i])
		default:
			out.FailedCandidateIDs = append(out.FailedCandidateIDs, ids[i])
		}
	}
	u.bustQueryCache(ctx)
	return out, nil
}

func (u *MatchCalculation) Refresh(ctx context.Context, sel RefreshSelector) (RefreshResult, error) {
	if (sel.JobID == nil) == (sel.CandidateID == nil) {
		return RefreshResult{}, ErrInvalidInput
	}

	var (
		pairs []repository.MatchScorePair
		err   error
	)
	if sel.JobID != nil {
		pairs, err = u.scores.PairsForJob(ctx, *sel.JobID)
	} else {
		pairs, err = u.scores.PairsForCandidate(ctx, *sel.CandidateID)
	}
	if err != nil {
		return RefreshResult{}, ErrInternal
	}

	var out RefreshResult
	for _, pair := range pairs {
		job, err := u.jobs.GetJobFacts(ctx, pair.JobID)
		if errors.Is(err, repository.ErrJobNotFound) {
			if markErr := u.scores.MarkInvalid(ctx, pair.JobID, pair.CandidateID); markErr == nil {
				out.Invalidated++
			}
			continue
		}
		if err != nil {
			return out, ErrInternal
		}
		cand, err := u.candidates.GetCandidateFacts(ctx, pair.CandidateID)
		if errors.Is(err, repository.ErrCandidateNotFound) {
			if markErr := u.scores.MarkInvalid(ctx, pair.JobID, pair.CandidateID); markErr == nil {
				out.Invalidated++
			}
			continue
		}
		if err != nil {
			return out, ErrInternal
		}

		if _, err := u.computeAndStore(ctx, job, cand); err != nil {
			return out, ErrInternal
		}
		out.Refreshed++
	}

	u.bustQueryCache(ctx)
	return out, nil
}

func (u *MatchCalculation) Invalidate(ctx context.Context, scope InvalidateScope) (int64, error) {
	set := 0
	if scope.JobID != nil {
		set++
	}
	if scope.CandidateID != nil {
		set++
	}
	if scope.SkillID != nil {
		set++
	}
	if set != 1 {
		return 0, ErrInvalidInput
	}

	var (
		affected int64
		err      error
	)
	switch {
	case scope.JobID != nil:
		affected, err = u.scores.InvalidateByJob(ctx, *scope.JobID)
	case scope.CandidateID != nil:
		affected, err = u.scores.InvalidateByCandidate(ctx, *scope.CandidateID)
	default:
		affected, err = u.scores.InvalidateBySkill(ctx, *scope.SkillID)
	}
	if err != nil {
		return 0, ErrInternal
	}

	u.bustQueryCache(ctx)
	return affected, nil
}

func (u *MatchCalculation) computeAndStore(ctx context.Context, job facts.JobFacts, cand facts.CandidateFacts) (repository.MatchScore, error) {
	breakdown := ComputeBreakdown(ctx, u.embedder, job, cand)

	upsert := repository.MatchScoreUpsert{
		JobID:           job.ID,
		CandidateID:     cand.ID,
		OverallScore:    breakdown.Overall,
		SkillScore:      breakdown.Skill.Score,
		ExperienceScore: breakdown.Experience.Score,
		EducationScore:  breakdown.Education.Score,
		LocationScore:   breakdown.Location.Score,
		SalaryScore:     breakdown.Salary.Score,
		Details:         breakdown.MatchingDetails(),
	}
	if breakdown.SemanticEnabled {
		sem := breakdown.Semantic.Score
		upsert.SemanticScore = &sem
	}

	stored, err := u.scores.Upsert(ctx, upsert)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Matching] Upsert failed | job_id=%d candidate_id=%d error=%v", job.ID, cand.ID, err)
		}
		return repository.MatchScore{}, err
	}
	return stored, nil
}

// ComputeBreakdown runs every criterion calculator behind a panic guard and
// combines them under the active weight profile. Semantic scoring runs
// whenever a provider is configured; a nil provider keeps the basic profile.
func ComputeBreakdown(ctx context.Context, embedder scoring.Provider, job facts.JobFacts, cand facts.CandidateFacts) scoring.Breakdown {
	skill := scoring.Guard(func() scoring.CriterionResult { return scoring.SkillScore(job, cand) })
	experience := scoring.Guard(func() scoring.CriterionResult { return scoring.ExperienceScore(job, cand) })
	education := scoring.Guard(func() scoring.CriterionResult { return scoring.EducationScore(job, cand) })
	location := scoring.Guard(func() scoring.CriterionResult { return scoring.LocationScore(job, cand) })
	salary := scoring.Guard(func() scoring.CriterionResult { return scoring.SalaryScore(job, cand) })

	semantic := scoring.SemanticScore(ctx, embedder, job, cand)

	return scoring.Combine(skill, experience, education, location, salary, semantic)
}

func (u *MatchCalculation) bustQueryCache(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateMatchQueries(ctx); err != nil && u.logger != nil {
		u.logger.Printf("[Matching] Cache invalidation failed | error=%v", err)
	}
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
