package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChampionshipCreatedV1       = "championship.created.v1"
	ChampionshipStatusChangedV1 = "championship.status_changed.v1"
	// ChampionshipStartDueV1 is published by the scheduler when a
	// championship's date arrives.
	ChampionshipStartDueV1 = "championship.start_due.v1"
)

// ChampionshipCreatedPayloadV1 is published after a championship is stored.
type ChampionshipCreatedPayloadV1 struct {
	ChampionshipID uuid.UUID `json:"championship_id"`
	Name           string    `json:"name"`
	Date           time.Time `json:"date"`
	CreatedBy      string    `json:"created_by"`
}

// ChampionshipStatusChangedPayloadV1 is published on every status change.
type ChampionshipStatusChangedPayloadV1 struct {
	ChampionshipID uuid.UUID  `json:"championship_id"`
	From           string     `json:"from"`
	To             string     `json:"to"`
	WinnerID       *uuid.UUID `json:"winner_id,omitempty"`
}

// ChampionshipStartDuePayloadV1 asks the championship module to activate a
// championship whose date has arrived.
type ChampionshipStartDuePayloadV1 struct {
	ChampionshipID uuid.UUID `json:"championship_id"`
	ScheduledFor   time.Time `json:"scheduled_for"`
}
