package athletehandlers

import (
	"context"

	athleteservice "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/application"
	athletedomain "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/domain"
	athletedb "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/repositories"
	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	"github.com/google/uuid"
)

type FakeService struct {
	trace []string

	RegisterAthleteFunc func(ctx context.Context, caller *authdomain.Claims, championshipID uuid.UUID, reg athletedomain.Registration) (*athletedb.Athlete, error)
	ImportAthletesFunc  func(ctx context.Context, caller *authdomain.Claims, championshipID uuid.UUID, fileName string, data []byte) (*athleteservice.ImportResult, error)
	ListAthletesFunc    func(ctx context.Context, championshipID uuid.UUID) ([]athletedb.Athlete, error)
	GetAthleteFunc      func(ctx context.Context, id uuid.UUID) (*athletedb.Athlete, error)
	RemoveAthleteFunc   func(ctx context.Context, caller *authdomain.Claims, id uuid.UUID) error
}

func (f *FakeService) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) RegisterAthlete(ctx context.Context, caller *authdomain.Claims, championshipID uuid.UUID, reg athletedomain.Registration) (*athletedb.Athlete, error) {
	f.record("RegisterAthlete")
	if f.RegisterAthleteFunc != nil {
		return f.RegisterAthleteFunc(ctx, caller, championshipID, reg)
	}
	return &athletedb.Athlete{ID: uuid.New(), ChampionshipID: championshipID, Name: reg.Name}, nil
}

func (f *FakeService) ImportAthletes(ctx context.Context, caller *authdomain.Claims, championshipID uuid.UUID, fileName string, data []byte) (*athleteservice.ImportResult, error) {
	f.record("ImportAthletes")
	if f.ImportAthletesFunc != nil {
		return f.ImportAthletesFunc(ctx, caller, championshipID, fileName, data)
	}
	return &athleteservice.ImportResult{Athletes: []athletedb.Athlete{}}, nil
}

func (f *FakeService) ListAthletes(ctx context.Context, championshipID uuid.UUID) ([]athletedb.Athlete, error) {
	f.record("ListAthletes")
	if f.ListAthletesFunc != nil {
		return f.ListAthletesFunc(ctx, championshipID)
	}
	return []athletedb.Athlete{}, nil
}

func (f *FakeService) GetAthlete(ctx context.Context, id uuid.UUID) (*athletedb.Athlete, error) {
	f.record("GetAthlete")
	if f.GetAthleteFunc != nil {
		return f.GetAthleteFunc(ctx, id)
	}
	return nil, athletedomain.ErrAthleteNotFound
}

func (f *FakeService) RemoveAthlete(ctx context.Context, caller *authdomain.Claims, id uuid.UUID) error {
	f.record("RemoveAthlete")
	if f.RemoveAthleteFunc != nil {
		return f.RemoveAthleteFunc(ctx, caller, id)
	}
	return nil
}

var _ athleteservice.Service = (*FakeService)(nil)
