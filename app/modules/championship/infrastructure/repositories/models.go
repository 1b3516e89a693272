package championshipdb

import (
	"time"

	championshipdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Championship is a slackline tournament owned by its organizer.
type Championship struct {
	bun.BaseModel `bun:"table:championships,alias:c"`
	ID            uuid.UUID                 `bun:"id,pk,type:uuid" json:"id"`
	Name          string                    `bun:"name,notnull" json:"name"`
	Description   string                    `bun:"description,nullzero" json:"description,omitempty"`
	Date          time.Time                 `bun:"date,notnull" json:"date"`
	Location      string                    `bun:"location,nullzero" json:"location,omitempty"`
	CreatedBy     string                    `bun:"created_by,notnull" json:"created_by"`
	Status        championshipdomain.Status `bun:"status,notnull" json:"status"`
	WinnerID      *uuid.UUID                `bun:"winner_id,type:uuid" json:"winner_id,omitempty"`
	CreatedAt     time.Time                 `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time                 `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// StatusCount is one row of a status histogram.
type StatusCount struct {
	Status championshipdomain.Status `bun:"status"`
	Count  int                       `bun:"count"`
}
