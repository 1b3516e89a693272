package trickdb

import (
	"time"

	trickdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Trick is a catalog entry athletes are scored on.
type Trick struct {
	bun.BaseModel `bun:"table:tricks,alias:t"`
	ID            uuid.UUID        `bun:"id,pk,type:uuid" json:"id"`
	Name          string           `bun:"name,notnull" json:"name"`
	Type          trickdomain.Type `bun:"type,notnull" json:"type"`
	BasePoints    int              `bun:"base_points,notnull" json:"base_points"`
	Description   string           `bun:"description,nullzero" json:"description,omitempty"`
	CreatedAt     time.Time        `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// Filter narrows a catalog listing. Zero values match everything.
type Filter struct {
	Query string
	Type  trickdomain.Type
}
