package championshipservice

import (
	"context"
	"time"

	championshipdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/domain"
	championshipdb "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Championship Repo
// ------------------------

type FakeChampionshipRepo struct {
	trace []string

	CreateFunc           func(ctx context.Context, db bun.IDB, c *championshipdb.Championship) error
	GetByIDFunc          func(ctx context.Context, db bun.IDB, id uuid.UUID) (*championshipdb.Championship, error)
	GetByIDForUpdateFunc func(ctx context.Context, db bun.IDB, id uuid.UUID) (*championshipdb.Championship, error)
	ListByCreatorFunc    func(ctx context.Context, db bun.IDB, createdBy string, status *championshipdomain.Status, limit int) ([]championshipdb.Championship, error)
	UpdateStatusFunc     func(ctx context.Context, db bun.IDB, id uuid.UUID, status championshipdomain.Status, winnerID *uuid.UUID) error
	DeleteFunc           func(ctx context.Context, db bun.IDB, id uuid.UUID) error
	CountByStatusFunc    func(ctx context.Context, db bun.IDB, createdBy string) (map[championshipdomain.Status]int, error)
}

func NewFakeChampionshipRepo() *FakeChampionshipRepo {
	return &FakeChampionshipRepo{trace: []string{}}
}

func (f *FakeChampionshipRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeChampionshipRepo) Create(ctx context.Context, db bun.IDB, c *championshipdb.Championship) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, c)
	}
	return nil
}

func (f *FakeChampionshipRepo) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*championshipdb.Championship, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, championshipdb.ErrNotFound
}

func (f *FakeChampionshipRepo) GetByIDForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*championshipdb.Championship, error) {
	f.record("GetByIDForUpdate")
	if f.GetByIDForUpdateFunc != nil {
		return f.GetByIDForUpdateFunc(ctx, db, id)
	}
	return nil, championshipdb.ErrNotFound
}

func (f *FakeChampionshipRepo) ListByCreator(ctx context.Context, db bun.IDB, createdBy string, status *championshipdomain.Status, limit int) ([]championshipdb.Championship, error) {
	f.record("ListByCreator")
	if f.ListByCreatorFunc != nil {
		return f.ListByCreatorFunc(ctx, db, createdBy, status, limit)
	}
	return nil, nil
}

func (f *FakeChampionshipRepo) UpdateStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status championshipdomain.Status, winnerID *uuid.UUID) error {
	f.record("UpdateStatus:" + string(status))
	if f.UpdateStatusFunc != nil {
		return f.UpdateStatusFunc(ctx, db, id, status, winnerID)
	}
	return nil
}

func (f *FakeChampionshipRepo) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeChampionshipRepo) CountByStatus(ctx context.Context, db bun.IDB, createdBy string) (map[championshipdomain.Status]int, error) {
	f.record("CountByStatus")
	if f.CountByStatusFunc != nil {
		return f.CountByStatusFunc(ctx, db, createdBy)
	}
	return map[championshipdomain.Status]int{}, nil
}

func (f *FakeChampionshipRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ championshipdb.Repository = (*FakeChampionshipRepo)(nil)

// ------------------------
// Fake ports
// ------------------------

type FakeScheduler struct {
	Scheduled []time.Time
	Cancelled []uuid.UUID
	Err       error
}

func (f *FakeScheduler) ScheduleChampionshipStart(_ context.Context, _ uuid.UUID, startTime time.Time) error {
	if f.Err != nil {
		return f.Err
	}
	f.Scheduled = append(f.Scheduled, startTime)
	return nil
}

func (f *FakeScheduler) CancelChampionshipJobs(_ context.Context, id uuid.UUID) error {
	f.Cancelled = append(f.Cancelled, id)
	return f.Err
}

type FakeAthleteCounter struct {
	Count int
	Seen  []uuid.UUID
}

func (f *FakeAthleteCounter) CountByChampionships(_ context.Context, ids []uuid.UUID) (int, error) {
	f.Seen = append(f.Seen, ids...)
	return f.Count, nil
}

type FakePublisher struct {
	Topics   []string
	Messages []*message.Message
}

func (f *FakePublisher) Publish(topic string, msgs ...*message.Message) error {
	for _, m := range msgs {
		f.Topics = append(f.Topics, topic)
		f.Messages = append(f.Messages, m)
	}
	return nil
}

func (f *FakePublisher) Close() error { return nil }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
