package bracketservice

import (
	"context"

	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	bracketdb "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service is the bracket module's application API.
type Service interface {
	// GenerateBracket seeds and stores a championship's bracket. An existing
	// bracket is replaced only when req.Overwrite is set.
	GenerateBracket(ctx context.Context, caller *authdomain.Claims, championshipID uuid.UUID, req GenerateRequest) (*Bracket, error)
	GetBracket(ctx context.Context, championshipID uuid.UUID) (*Bracket, error)
	ResetBracket(ctx context.Context, caller *authdomain.Claims, championshipID uuid.UUID) error

	GetMatch(ctx context.Context, id uuid.UUID) (*MatchView, error)
	StartMatch(ctx context.Context, caller *authdomain.Claims, id uuid.UUID) (*bracketdb.Match, error)
	// RecordResult completes an in-progress match and advances its winner.
	RecordResult(ctx context.Context, caller *authdomain.Claims, id uuid.UUID, winnerID uuid.UUID) (*bracketdb.Match, error)
	// DecideMatch completes an in-progress match in favour of the athlete with
	// the higher performance total.
	DecideMatch(ctx context.Context, caller *authdomain.Claims, id uuid.UUID) (*bracketdb.Match, error)
}

// GenerateRequest selects the layout and whether an existing bracket may be
// replaced. An empty layout uses the configured default.
type GenerateRequest struct {
	Layout    string `json:"layout"`
	Overwrite bool   `json:"overwrite"`
}

// Bracket is a championship's bracket grouped by round.
type Bracket struct {
	ChampionshipID uuid.UUID  `json:"championship_id"`
	Rounds         []Round    `json:"rounds"`
	ChampionID     *uuid.UUID `json:"champion_id,omitempty"`
	ChampionName   string     `json:"champion_name,omitempty"`
	Complete       bool       `json:"complete"`
}

// Round is one column of the bracket.
type Round struct {
	Number  int         `json:"number"`
	Name    string      `json:"name"`
	Matches []MatchView `json:"matches"`
}

// MatchView is a match with its athletes' names resolved.
type MatchView struct {
	bracketdb.Match
	Athlete1Name string `json:"athlete1_name,omitempty"`
	Athlete2Name string `json:"athlete2_name,omitempty"`
	WinnerName   string `json:"winner_name,omitempty"`
}

// ChampionshipInfo is what the bracket module needs to know about a championship.
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

// AthleteSource reads a championship's roster.
type AthleteSource interface {
	ListIDs(ctx context.Context, db bun.IDB, championshipID uuid.UUID) ([]uuid.UUID, error)
	Names(ctx context.Context, db bun.IDB, championshipID uuid.UUID) (map[uuid.UUID]string, error)
}

// PerformanceTotals reports each athlete's total score in a match.
type PerformanceTotals interface {
	TotalsByMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) (map[uuid.UUID]float64, error)
}
