package championshipqueue

import (
	"github.com/google/uuid"
)

const (
	// QueueName is the dedicated River queue for championship jobs.
	QueueName = "championship"

	kindChampionshipStart = "championship_start"
)

// ChampionshipStartJob activates a championship at its scheduled date.
type ChampionshipStartJob struct {
	ChampionshipID uuid.UUID `json:"championship_id"`
}

// Kind returns the job type identifier for River
func (ChampionshipStartJob) Kind() string { return kindChampionshipStart }

// JobInfo represents information about a scheduled job (for debugging/monitoring)
type JobInfo struct {
	ID             int64  `json:"id"`
	Kind           string `json:"kind"`
	ChampionshipID string `json:"championship_id"`
	State          string `json:"state"`
	ScheduledAt    string `json:"scheduled_at"`
	CreatedAt      string `json:"created_at"`
	Attempt        int    `json:"attempt"`
	MaxAttempts    int    `json:"max_attempts"`
}
