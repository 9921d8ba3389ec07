package usecase

import (
	"context"
	"errors"
	"log"
	"sort"

	"talent-match/internal/domain/alert"
	"talent-match/internal/domain/facts"
	"talent-match/internal/repository"
)

// aiGateScore is the stored overall score an alert owner must reach when
// the alert opts into AI screening.
const aiGateScore = 70.0

// AlertMatchResult is one alert admitted for a job, with its composite
// breakdown.
type AlertMatchResult struct {
	AlertID     int64
	CandidateID int64
	Breakdown   alert.Breakdown
	Composite   float64
}

// AlertDeliverySink receives the final ordered matches for a job. Delivery
// failures never affect the returned match list.
type AlertDeliverySink interface {
	DeliverAlertMatches(ctx context.Context, jobID int64, jobTitle string, matches []AlertMatchResult)
}

// AlertMatchingUsecase fans a job out to candidate job alerts.
type AlertMatchingUsecase interface {
	MatchJobToAlerts(ctx context.Context, jobID int64) ([]AlertMatchResult, error)
}

type AlertMatching struct {
	jobs   repository.JobFactsRepository
	alerts repository.JobAlertRepository
	scores repository.MatchScoreRepository
	sink   AlertDeliverySink
	logger *log.Logger
}

func NewAlertMatchingUsecase(
	jobs repository.JobFactsRepository,
	alerts repository.JobAlertRepository,
	scores repository.MatchScoreRepository,
	sink AlertDeliverySink,
	logger *log.Logger,
) *AlertMatching {
	return &AlertMatching{jobs: jobs, alerts: alerts, scores: scores, sink: sink, logger: logger}
}

func (u *AlertMatching) MatchJobToAlerts(ctx context.Context, jobID int64) ([]AlertMatchResult, error) {
	if jobID <= 0 {
		return nil, ErrInvalidInput
	}

	job, err := u.jobs.GetJobFacts(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}

	alerts, err := u.alerts.ListActiveForMatching(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	matched := make([]AlertMatchResult, 0)
	for _, a := range alerts {
		res, ok := u.evaluateAlert(ctx, a, job)
		if !ok {
			continue
		}
		matched = append(matched, res)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Composite != matched[j].Composite {
			return matched[i].Composite > matched[j].Composite
		}
		return matched[i].AlertID < matched[j].AlertID
	})

	if u.sink != nil && len(matched) > 0 {
		u.sink.DeliverAlertMatches(ctx, jobID, job.Title, matched)
	}
	return matched, nil
}

// evaluateAlert scores one alert in isolation. A panic or store error on
// one alert must not stop the sweep over the rest.
func (u *AlertMatching) evaluateAlert(ctx context.Context, a alert.Alert, job facts.JobFacts) (res AlertMatchResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if u.logger != nil {
				u.logger.Printf("[AlertMatching] Alert evaluation panic | alert_id=%d job_id=%d panic=%v", a.ID, job.ID, r)
			}
			ok = false
		}
	}()

	breakdown := alert.CompositeScore(a, job)
	composite := breakdown.Total()
	if composite < alert.IncludeThreshold {
		return AlertMatchResult{}, false
	}

	if a.UseAIMatching {
		stored, err := u.scores.Get(ctx, job.ID, a.CandidateID)
		switch {
		case err == nil:
			// A stale row no longer reflects the entities; it admits like
			// a missing one.
			if stored.IsValid && stored.OverallScore < aiGateScore {
				return AlertMatchResult{}, false
			}
		case errors.Is(err, repository.ErrMatchScoreNotFound):
			// No screening data yet; the alert passes on composite alone.
		default:
			if u.logger != nil {
				u.logger.Printf("[AlertMatching] Score lookup failed | alert_id=%d job_id=%d error=%v", a.ID, job.ID, err)
			}
			return AlertMatchResult{}, false
		}
	}

	return AlertMatchResult{
		AlertID:     a.ID,
		CandidateID: a.CandidateID,
		Breakdown:   breakdown,
		Composite:   composite,
	}, true
}
