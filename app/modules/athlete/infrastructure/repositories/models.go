package athletedb

import (
	"time"

	athletedomain "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Athlete is a competitor registered in one championship.
type Athlete struct {
	bun.BaseModel  `bun:"table:athletes,alias:a"`
	ID             uuid.UUID              `bun:"id,pk,type:uuid" json:"id"`
	ChampionshipID uuid.UUID              `bun:"championship_id,type:uuid,notnull" json:"championship_id"`
	Name           string                 `bun:"name,notnull" json:"name"`
	Category       athletedomain.Category `bun:"category,notnull" json:"category"`
	Level          athletedomain.Level    `bun:"level,notnull" json:"level"`
	Bio            string                 `bun:"bio,nullzero" json:"bio,omitempty"`
	AvatarURL      string                 `bun:"avatar_url,nullzero" json:"avatar_url,omitempty"`
	CreatedAt      time.Time              `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
}
