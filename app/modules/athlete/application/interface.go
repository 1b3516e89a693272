package athleteservice

import (
	"context"

	athletedomain "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/domain"
	athletedb "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/repositories"
	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service is the athlete module's application API.
type Service interface {
	RegisterAthlete(ctx context.Context, caller *authdomain.Claims, championshipID uuid.UUID, reg athletedomain.Registration) (*athletedb.Athlete, error)
	// ImportAthletes registers every athlete of a CSV or XLSX roster, or none
	// of them if any row is invalid.
	ImportAthletes(ctx context.Context, caller *authdomain.Claims, championshipID uuid.UUID, fileName string, data []byte) (*ImportResult, error)
	ListAthletes(ctx context.Context, championshipID uuid.UUID) ([]athletedb.Athlete, error)
	GetAthlete(ctx context.Context, id uuid.UUID) (*athletedb.Athlete, error)
	RemoveAthlete(ctx context.Context, caller *authdomain.Claims, id uuid.UUID) error
}

// ImportResult lists the athletes created by an import.
type ImportResult struct {
	Imported int                 `json:"imported"`
	Athletes []athletedb.Athlete `json:"athletes"`
}

// ChampionshipInfo is what the athlete module needs to know about a championship.
type ChampionshipInfo struct {
	ID        uuid.UUID
	CreatedBy string
	Completed bool
}

// ChampionshipLookup locks a championship row for the current transaction.
// A missing championship yields nil, nil.
type ChampionshipLookup interface {
	LockChampionship(ctx context.Context, db bun.IDB, id uuid.UUID) (*ChampionshipInfo, error)
}

// BracketLookup reports whether a championship's bracket has been generated.
type BracketLookup interface {
	HasBracket(ctx context.Context, db bun.IDB, championshipID uuid.UUID) (bool, error)
}
