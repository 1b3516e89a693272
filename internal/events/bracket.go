package events

import "github.com/google/uuid"

const (
	BracketGeneratedV1      = "bracket.generated.v1"
	BracketMatchCompletedV1 = "bracket.match_completed.v1"
	BracketCompletedV1      = "bracket.completed.v1"
)

// BracketGeneratedPayloadV1 is published after a bracket is written.
type BracketGeneratedPayloadV1 struct {
	ChampionshipID uuid.UUID `json:"championship_id"`
	Layout         string    `json:"layout"`
	Athletes       int       `json:"athletes"`
	Rounds         int       `json:"rounds"`
	Matches        int       `json:"matches"`
	Byes           int       `json:"byes"`
	Overwritten    bool      `json:"overwritten"`
}

// MatchCompletedPayloadV1 is published for each match an organizer completes.
// Matches completed as byes during advancement are listed in AutoAdvanced.
type MatchCompletedPayloadV1 struct {
	ChampionshipID uuid.UUID   `json:"championship_id"`
	MatchID        uuid.UUID   `json:"match_id"`
	Round          int         `json:"round"`
	WinnerID       uuid.UUID   `json:"winner_id"`
	AutoAdvanced   []uuid.UUID `json:"auto_advanced,omitempty"`
}

// BracketCompletedPayloadV1 is published when the final is decided.
type BracketCompletedPayloadV1 struct {
	ChampionshipID uuid.UUID `json:"championship_id"`
	FinalMatchID   uuid.UUID `json:"final_match_id"`
	ChampionID     uuid.UUID `json:"champion_id"`
}
