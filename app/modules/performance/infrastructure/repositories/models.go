package performancedb

import (
	"time"

	performancedomain "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Performance is one athlete's scored run in a match.
type Performance struct {
	bun.BaseModel  `bun:"table:performances,alias:p"`
	ID             uuid.UUID                       `bun:"id,pk,type:uuid" json:"id"`
	AthleteID      uuid.UUID                       `bun:"athlete_id,type:uuid,notnull" json:"athlete_id"`
	ChampionshipID uuid.UUID                       `bun:"championship_id,type:uuid,notnull" json:"championship_id"`
	MatchID        uuid.UUID                       `bun:"match_id,type:uuid,notnull" json:"match_id"`
	Tricks         []performancedomain.ScoredTrick `bun:"tricks,type:jsonb,notnull" json:"tricks"`
	TotalScore     float64                         `bun:"total_score,notnull" json:"total_score"`
	CreatedAt      time.Time                       `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time                       `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// AthleteBest is an athlete's highest total across a championship.
type AthleteBest struct {
	AthleteID uuid.UUID `bun:"athlete_id"`
	Best      float64   `bun:"best"`
}
