package athleteservice

import (
	"context"

	athletedb "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Athlete Repo
// ------------------------

type FakeAthleteRepo struct {
	trace    []string
	athletes map[uuid.UUID]*athletedb.Athlete

	CreateErr error
}

func NewFakeAthleteRepo() *FakeAthleteRepo {
	return &FakeAthleteRepo{trace: []string{}, athletes: map[uuid.UUID]*athletedb.Athlete{}}
}

func (f *FakeAthleteRepo) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeAthleteRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeAthleteRepo) Create(_ context.Context, _ bun.IDB, athletes ...*athletedb.Athlete) error {
	f.record("Create")
	if f.CreateErr != nil {
		return f.CreateErr
	}
	for _, a := range athletes {
		f.athletes[a.ID] = a
	}
	return nil
}

func (f *FakeAthleteRepo) GetByID(_ context.Context, _ bun.IDB, id uuid.UUID) (*athletedb.Athlete, error) {
	f.record("GetByID")
	if a, ok := f.athletes[id]; ok {
		return a, nil
	}
	return nil, athletedb.ErrNotFound
}

func (f *FakeAthleteRepo) ListByChampionship(_ context.Context, _ bun.IDB, championshipID uuid.UUID) ([]athletedb.Athlete, error) {
	f.record("ListByChampionship")
	var out []athletedb.Athlete
	for _, a := range f.athletes {
		if a.ChampionshipID == championshipID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *FakeAthleteRepo) ListIDs(_ context.Context, _ bun.IDB, championshipID uuid.UUID) ([]uuid.UUID, error) {
	f.record("ListIDs")
	var out []uuid.UUID
	for id, a := range f.athletes {
		if a.ChampionshipID == championshipID {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *FakeAthleteRepo) CountByChampionships(_ context.Context, _ bun.IDB, ids []uuid.UUID) (int, error) {
	f.record("CountByChampionships")
	n := 0
	for _, a := range f.athletes {
		for _, id := range ids {
			if a.ChampionshipID == id {
				n++
			}
		}
	}
	return n, nil
}

func (f *FakeAthleteRepo) Delete(_ context.Context, _ bun.IDB, id uuid.UUID) error {
	f.record("Delete")
	if _, ok := f.athletes[id]; !ok {
		return athletedb.ErrNotFound
	}
	delete(f.athletes, id)
	return nil
}

var _ athletedb.Repository = (*FakeAthleteRepo)(nil)

// ------------------------
// Fake ports
// ------------------------

type FakeChampionshipLookup struct {
	Info  *ChampionshipInfo
	Err   error
	Locks int
}

func (f *FakeChampionshipLookup) LockChampionship(_ context.Context, _ bun.IDB, _ uuid.UUID) (*ChampionshipInfo, error) {
	f.Locks++
	return f.Info, f.Err
}

type FakeBracketLookup struct {
	Exists bool
}

func (f *FakeBracketLookup) HasBracket(context.Context, bun.IDB, uuid.UUID) (bool, error) {
	return f.Exists, nil
}
