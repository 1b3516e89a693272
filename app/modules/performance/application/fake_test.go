package performanceservice

import (
	"context"
	"sort"

	performancedb "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Performance Repo
// ------------------------

type FakePerformanceRepo struct {
	trace        []string
	performances []performancedb.Performance

	UpsertErr error
	Best      []performancedb.AthleteBest
}

func NewFakePerformanceRepo() *FakePerformanceRepo {
	return &FakePerformanceRepo{trace: []string{}}
}

func (f *FakePerformanceRepo) record(step string) { f.trace = append(f.trace, step) }

func (f *FakePerformanceRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakePerformanceRepo) Upsert(_ context.Context, _ bun.IDB, p *performancedb.Performance) error {
	f.record("Upsert")
	if f.UpsertErr != nil {
		return f.UpsertErr
	}
	for i := range f.performances {
		if f.performances[i].AthleteID == p.AthleteID && f.performances[i].MatchID == p.MatchID {
			p.ID = f.performances[i].ID
			p.CreatedAt = f.performances[i].CreatedAt
			f.performances[i] = *p
			return nil
		}
	}
	f.performances = append(f.performances, *p)
	return nil
}

func (f *FakePerformanceRepo) ListByMatch(_ context.Context, _ bun.IDB, matchID uuid.UUID) ([]performancedb.Performance, error) {
	f.record("ListByMatch")
	var out []performancedb.Performance
	for _, p := range f.performances {
		if p.MatchID == matchID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })
	return out, nil
}

func (f *FakePerformanceRepo) TotalsByMatch(_ context.Context, _ bun.IDB, matchID uuid.UUID) (map[uuid.UUID]float64, error) {
	f.record("TotalsByMatch")
	out := map[uuid.UUID]float64{}
	for _, p := range f.performances {
		if p.MatchID == matchID {
			out[p.AthleteID] = p.TotalScore
		}
	}
	return out, nil
}

func (f *FakePerformanceRepo) BestByChampionship(_ context.Context, _ bun.IDB, _ uuid.UUID) ([]performancedb.AthleteBest, error) {
	f.record("BestByChampionship")
	return f.Best, nil
}

// ------------------------
// Fake ports
// ------------------------

type FakeMatchLookup struct {
	Match *MatchInfo
	// Locked, when set, is returned by LockMatch instead of Match.
	Locked *MatchInfo
	Err    error
	calls  []string
}

func (f *FakeMatchLookup) GetMatch(_ context.Context, _ bun.IDB, id uuid.UUID) (*MatchInfo, error) {
	f.calls = append(f.calls, "GetMatch")
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Match == nil || f.Match.ID != id {
		return nil, nil
	}
	return f.Match, nil
}

func (f *FakeMatchLookup) LockMatch(ctx context.Context, db bun.IDB, id uuid.UUID) (*MatchInfo, error) {
	f.calls = append(f.calls, "LockMatch")
	if f.Locked != nil {
		return f.Locked, nil
	}
	return f.Match, nil
}

type FakeChampionshipOwner struct {
	Owner   string
	Missing bool
	Locks   int
}

func (f *FakeChampionshipOwner) LockOwner(_ context.Context, _ bun.IDB, _ uuid.UUID) (string, bool, error) {
	f.Locks++
	if f.Missing {
		return "", false, nil
	}
	return f.Owner, true, nil
}

type FakeTrickCatalog struct {
	Known map[uuid.UUID]bool
}

func (f *FakeTrickCatalog) Existing(_ context.Context, _ bun.IDB, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	for _, id := range ids {
		if f.Known[id] {
			out[id] = true
		}
	}
	return out, nil
}

type FakeAthleteNames struct {
	Map map[uuid.UUID]string
}

func (f *FakeAthleteNames) Names(_ context.Context, _ bun.IDB, _ uuid.UUID) (map[uuid.UUID]string, error) {
	return f.Map, nil
}
