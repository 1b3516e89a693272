package performanceservice

import (
	"context"

	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	performancedomain "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/domain"
	performancedb "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service is the performance module's application API.
type Service interface {
	// SubmitPerformance records an athlete's tricks for an in-progress match,
	// replacing any earlier submission.
	SubmitPerformance(ctx context.Context, caller *authdomain.Claims, matchID uuid.UUID, req SubmitRequest) (*performancedb.Performance, error)
	ListPerformances(ctx context.Context, matchID uuid.UUID) ([]performancedb.Performance, error)
	// ScoreChart renders each athlete's best total as a PNG bar chart.
	ScoreChart(ctx context.Context, championshipID uuid.UUID) ([]byte, error)
}

// SubmitRequest is one athlete's scored tricks.
type SubmitRequest struct {
	AthleteID uuid.UUID                       `json:"athlete_id"`
	Tricks    []performancedomain.ScoredTrick `json:"tricks"`
}

// MatchInfo is what scoring needs to know about a match.
type MatchInfo struct {
	ID             uuid.UUID
	ChampionshipID uuid.UUID
	Athlete1ID     *uuid.UUID
	Athlete2ID     *uuid.UUID
	InProgress     bool
}

// HasAthlete reports whether id occupies one of the match slots.
func (m *MatchInfo) HasAthlete(id uuid.UUID) bool {
	return (m.Athlete1ID != nil && *m.Athlete1ID == id) || (m.Athlete2ID != nil && *m.Athlete2ID == id)
}

// MatchLookup reads matches. A missing match yields nil, nil.
type MatchLookup interface {
	GetMatch(ctx context.Context, db bun.IDB, id uuid.UUID) (*MatchInfo, error)
	// LockMatch is GetMatch with a row lock.
	LockMatch(ctx context.Context, db bun.IDB, id uuid.UUID) (*MatchInfo, error)
}

// ChampionshipOwner locks a championship and returns its creator. A missing
// championship yields "", false.
type ChampionshipOwner interface {
	LockOwner(ctx context.Context, db bun.IDB, id uuid.UUID) (string, bool, error)
}

// TrickCatalog reports which trick IDs exist.
type TrickCatalog interface {
	Existing(ctx context.Context, db bun.IDB, ids []uuid.UUID) (map[uuid.UUID]bool, error)
}

// AthleteNames resolves a championship's athlete names.
type AthleteNames interface {
	Names(ctx context.Context, db bun.IDB, championshipID uuid.UUID) (map[uuid.UUID]string, error)
}
