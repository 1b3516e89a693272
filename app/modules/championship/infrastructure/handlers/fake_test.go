package championshiphandlers

import (
	"context"

	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	championshipservice "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/application"
	championshipdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/domain"
	championshipdb "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/repositories"
	"github.com/google/uuid"
)

type FakeService struct {
	trace []string

	CreateChampionshipFunc   func(ctx context.Context, creator string, req championshipservice.CreateChampionshipRequest) (*championshipdb.Championship, error)
	GetChampionshipFunc      func(ctx context.Context, id uuid.UUID) (*championshipdb.Championship, error)
	ListChampionshipsFunc    func(ctx context.Context, creator string, status string) ([]championshipdb.Championship, error)
	UpdateStatusFunc         func(ctx context.Context, caller *authdomain.Claims, id uuid.UUID, to championshipdomain.Status) (*championshipdb.Championship, error)
	DeleteChampionshipFunc   func(ctx context.Context, caller *authdomain.Claims, id uuid.UUID) error
	ActivateChampionshipFunc func(ctx context.Context, id uuid.UUID) (*championshipdb.Championship, error)
	CompleteChampionshipFunc func(ctx context.Context, id uuid.UUID, winnerID uuid.UUID) (*championshipdb.Championship, error)
	GetDashboardFunc         func(ctx context.Context, creator string) (*championshipservice.Dashboard, error)
}

func (f *FakeService) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) CreateChampionship(ctx context.Context, creator string, req championshipservice.CreateChampionshipRequest) (*championshipdb.Championship, error) {
	f.record("CreateChampionship")
	if f.CreateChampionshipFunc != nil {
		return f.CreateChampionshipFunc(ctx, creator, req)
	}
	return &championshipdb.Championship{ID: uuid.New(), Name: req.Name, CreatedBy: creator}, nil
}

func (f *FakeService) GetChampionship(ctx context.Context, id uuid.UUID) (*championshipdb.Championship, error) {
	f.record("GetChampionship")
	if f.GetChampionshipFunc != nil {
		return f.GetChampionshipFunc(ctx, id)
	}
	return nil, championshipdomain.ErrChampionshipNotFound
}

func (f *FakeService) ListChampionships(ctx context.Context, creator string, status string) ([]championshipdb.Championship, error) {
	f.record("ListChampionships")
	if f.ListChampionshipsFunc != nil {
		return f.ListChampionshipsFunc(ctx, creator, status)
	}
	return []championshipdb.Championship{}, nil
}

func (f *FakeService) UpdateStatus(ctx context.Context, caller *authdomain.Claims, id uuid.UUID, to championshipdomain.Status) (*championshipdb.Championship, error) {
	f.record("UpdateStatus")
	if f.UpdateStatusFunc != nil {
		return f.UpdateStatusFunc(ctx, caller, id, to)
	}
	return &championshipdb.Championship{ID: id, Status: to}, nil
}

func (f *FakeService) DeleteChampionship(ctx context.Context, caller *authdomain.Claims, id uuid.UUID) error {
	f.record("DeleteChampionship")
	if f.DeleteChampionshipFunc != nil {
		return f.DeleteChampionshipFunc(ctx, caller, id)
	}
	return nil
}

func (f *FakeService) ActivateChampionship(ctx context.Context, id uuid.UUID) (*championshipdb.Championship, error) {
	f.record("ActivateChampionship")
	if f.ActivateChampionshipFunc != nil {
		return f.ActivateChampionshipFunc(ctx, id)
	}
	return &championshipdb.Championship{ID: id, Status: championshipdomain.StatusActive}, nil
}

func (f *FakeService) CompleteChampionship(ctx context.Context, id uuid.UUID, winnerID uuid.UUID) (*championshipdb.Championship, error) {
	f.record("CompleteChampionship")
	if f.CompleteChampionshipFunc != nil {
		return f.CompleteChampionshipFunc(ctx, id, winnerID)
	}
	return &championshipdb.Championship{ID: id, Status: championshipdomain.StatusCompleted, WinnerID: &winnerID}, nil
}

func (f *FakeService) GetDashboard(ctx context.Context, creator string) (*championshipservice.Dashboard, error) {
	f.record("GetDashboard")
	if f.GetDashboardFunc != nil {
		return f.GetDashboardFunc(ctx, creator)
	}
	return &championshipservice.Dashboard{}, nil
}

var _ championshipservice.Service = (*FakeService)(nil)
