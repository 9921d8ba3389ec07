package ws

import (
	"encoding/json"
	"time"
)

// AlertMatch is one alert that matched a job, as pushed to subscribers.
// Rank is the 1-based position in the ordered match list.
type AlertMatch struct {
	AlertID        int64   `json:"alert_id"`
	CandidateID    int64   `json:"candidate_id"`
	CompositeScore float64 `json:"composite_score"`
	Rank           int     `json:"rank"`
}

type AlertMatchesEvent struct {
	Type      string       `json:"type"`
	JobID     int64        `json:"job_id"`
	JobTitle  string       `json:"job_title"`
	Matches   []AlertMatch `json:"matches"`
	Timestamp string       `json:"timestamp"`
}

// Notifier broadcasts alert-match events over the websocket hub.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyAlertMatches(jobID int64, jobTitle string, matches []AlertMatch) {
	if n == nil || n.hub == nil {
		return
	}
	if len(matches) == 0 {
		return
	}

	evt := AlertMatchesEvent{
		Type:      "alert_matches",
		JobID:     jobID,
		JobTitle:  jobTitle,
		Matches:   matches,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
