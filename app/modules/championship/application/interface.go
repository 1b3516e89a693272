package championshipservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	championshipdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/domain"
	championshipdb "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/repositories"
	"github.com/google/uuid"
)

// Service is the championship module's application API.
type Service interface {
	CreateChampionship(ctx context.Context, creator string, req CreateChampionshipRequest) (*championshipdb.Championship, error)
	GetChampionship(ctx context.Context, id uuid.UUID) (*championshipdb.Championship, error)
	ListChampionships(ctx context.Context, creator string, status string) ([]championshipdb.Championship, error)
	UpdateStatus(ctx context.Context, caller *authdomain.Claims, id uuid.UUID, to championshipdomain.Status) (*championshipdb.Championship, error)
	DeleteChampionship(ctx context.Context, caller *authdomain.Claims, id uuid.UUID) error

	// ActivateChampionship moves a draft championship to active. Active or
	// completed championships are returned unchanged.
	ActivateChampionship(ctx context.Context, id uuid.UUID) (*championshipdb.Championship, error)
	// CompleteChampionship records the winner and completes the championship.
	// A completed championship is returned unchanged.
	CompleteChampionship(ctx context.Context, id uuid.UUID, winnerID uuid.UUID) (*championshipdb.Championship, error)

	GetDashboard(ctx context.Context, creator string) (*Dashboard, error)
}

// CreateChampionshipRequest carries organizer input for a new championship.
type CreateChampionshipRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Date is RFC 3339, YYYY-MM-DD or natural language.
	Date     string `json:"date"`
	Timezone string `json:"timezone"`
	Location string `json:"location"`
}

// Dashboard summarizes a caller's championships.
type Dashboard struct {
	Counts        map[championshipdomain.Status]int `json:"counts"`
	Total         int                               `json:"total"`
	TotalAthletes int                               `json:"total_athletes"`
	Recent        []championshipdb.Championship     `json:"recent"`
	GeneratedAt   time.Time                         `json:"generated_at"`
}

// RecentLimit is how many championships the dashboard lists.
const RecentLimit = 5

// AthleteCounter counts registered athletes across championships.
type AthleteCounter interface {
	CountByChampionships(ctx context.Context, ids []uuid.UUID) (int, error)
}

// Scheduler schedules and cancels championship start jobs.
type Scheduler interface {
	ScheduleChampionshipStart(ctx context.Context, championshipID uuid.UUID, startTime time.Time) error
	CancelChampionshipJobs(ctx context.Context, championshipID uuid.UUID) error
}
