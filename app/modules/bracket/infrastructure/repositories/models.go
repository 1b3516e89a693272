package bracketdb

import (
	"time"

	bracketdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Match is one node of a championship's single-elimination bracket.
type Match struct {
	bun.BaseModel  `bun:"table:matches,alias:m"`
	ID             uuid.UUID                 `bun:"id,pk,type:uuid" json:"id"`
	ChampionshipID uuid.UUID                 `bun:"championship_id,type:uuid,notnull" json:"championship_id"`
	Round          int                       `bun:"round,notnull" json:"round"`
	Position       int                       `bun:"position,notnull" json:"position"`
	Athlete1ID     *uuid.UUID                `bun:"athlete1_id,type:uuid" json:"athlete1_id"`
	Athlete2ID     *uuid.UUID                `bun:"athlete2_id,type:uuid" json:"athlete2_id"`
	WinnerID       *uuid.UUID                `bun:"winner_id,type:uuid" json:"winner_id"`
	Status         bracketdomain.MatchStatus `bun:"status,notnull" json:"status"`
	NextMatchID    *uuid.UUID                `bun:"next_match_id,type:uuid" json:"next_match_id"`
	NextSlot       int                       `bun:"next_slot,notnull" json:"next_slot"`
	Feeders        int                       `bun:"feeders,notnull" json:"feeders"`
	StartedAt      *time.Time                `bun:"started_at" json:"started_at,omitempty"`
	CompletedAt    *time.Time                `bun:"completed_at" json:"completed_at,omitempty"`
	CreatedAt      time.Time                 `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time                 `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// IsFinal reports whether the match has no successor.
func (m *Match) IsFinal() bool { return m.NextMatchID == nil }

// HasAthlete reports whether id occupies one of the match slots.
func (m *Match) HasAthlete(id uuid.UUID) bool {
	return (m.Athlete1ID != nil && *m.Athlete1ID == id) || (m.Athlete2ID != nil && *m.Athlete2ID == id)
}

// SetSlot places an athlete into slot 0 or 1.
func (m *Match) SetSlot(slot int, id uuid.UUID) {
	athlete := id
	if slot == 0 {
		m.Athlete1ID = &athlete
		return
	}
	m.Athlete2ID = &athlete
}

// SoleAthlete returns the only assigned athlete, if exactly one slot is filled.
func (m *Match) SoleAthlete() (uuid.UUID, bool) {
	switch {
	case m.Athlete1ID != nil && m.Athlete2ID == nil:
		return *m.Athlete1ID, true
	case m.Athlete1ID == nil && m.Athlete2ID != nil:
		return *m.Athlete2ID, true
	}
	return uuid.Nil, false
}
