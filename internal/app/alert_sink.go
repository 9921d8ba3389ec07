package app

import (
	"context"
	"log"

	"talent-match/internal/usecase"
	"talent-match/internal/ws"
)

// WSAlertSink pushes admitted alert matches to websocket subscribers and
// logs the delivery. Persisting notifications is the notification
// service's job, not ours.
type WSAlertSink struct {
	notifier *ws.Notifier
	logger   *log.Logger
}

func NewWSAlertSink(notifier *ws.Notifier, logger *log.Logger) *WSAlertSink {
	return &WSAlertSink{notifier: notifier, logger: logger}
}

func (s *WSAlertSink) DeliverAlertMatches(_ context.Context, jobID int64, jobTitle string, matches []usecase.AlertMatchResult) {
	if s == nil {
		return
	}

	out := make([]ws.AlertMatch, 0, len(matches))
	for i, m := range matches {
		out = append(out, ws.AlertMatch{
			AlertID:        m.AlertID,
			CandidateID:    m.CandidateID,
			CompositeScore: m.Composite,
			Rank:           i + 1,
		})
	}
	if s.notifier != nil {
		s.notifier.NotifyAlertMatches(jobID, jobTitle, out)
	}
	if s.logger != nil {
		s.logger.Printf("[AlertMatching] Delivered matches | job_id=%d count=%d", jobID, len(out))
	}
}
