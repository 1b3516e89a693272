package bracketservice

import (
	"context"
	"sort"

	bracketdb "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Bracket Repo
// ------------------------

type FakeBracketRepo struct {
	trace   []string
	matches map[uuid.UUID]*bracketdb.Match

	InsertErr error
}

func NewFakeBracketRepo() *FakeBracketRepo {
	return &FakeBracketRepo{matches: map[uuid.UUID]*bracketdb.Match{}}
}

func (f *FakeBracketRepo) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeBracketRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeBracketRepo) ResetTrace() { f.trace = nil }

func (f *FakeBracketRepo) CountByChampionship(_ context.Context, _ bun.IDB, championshipID uuid.UUID) (int, error) {
	f.record("CountByChampionship")
	n := 0
	for _, m := range f.matches {
		if m.ChampionshipID == championshipID {
			n++
		}
	}
	return n, nil
}

func (f *FakeBracketRepo) InsertMatches(_ context.Context, _ bun.IDB, matches []*bracketdb.Match) error {
	f.record("InsertMatches")
	if f.InsertErr != nil {
		return f.InsertErr
	}
	for _, m := range matches {
		cp := *m
		f.matches[m.ID] = &cp
	}
	return nil
}

func (f *FakeBracketRepo) DeleteByChampionship(_ context.Context, _ bun.IDB, championshipID uuid.UUID) (int, error) {
	f.record("DeleteByChampionship")
	n := 0
	for id, m := range f.matches {
		if m.ChampionshipID == championshipID {
			delete(f.matches, id)
			n++
		}
	}
	return n, nil
}

func (f *FakeBracketRepo) ListByChampionship(_ context.Context, _ bun.IDB, championshipID uuid.UUID) ([]bracketdb.Match, error) {
	f.record("ListByChampionship")
	var out []bracketdb.Match
	for _, m := range f.matches {
		if m.ChampionshipID == championshipID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (f *FakeBracketRepo) GetByID(_ context.Context, _ bun.IDB, id uuid.UUID) (*bracketdb.Match, error) {
	f.record("GetByID")
	return f.get(id)
}

func (f *FakeBracketRepo) GetByIDForUpdate(_ context.Context, _ bun.IDB, id uuid.UUID) (*bracketdb.Match, error) {
	f.record("GetByIDForUpdate")
	return f.get(id)
}

func (f *FakeBracketRepo) get(id uuid.UUID) (*bracketdb.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, bracketdb.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *FakeBracketRepo) UpdateMatch(_ context.Context, _ bun.IDB, match *bracketdb.Match) error {
	f.record("UpdateMatch")
	if _, ok := f.matches[match.ID]; !ok {
		return bracketdb.ErrNotFound
	}
	cp := *match
	f.matches[match.ID] = &cp
	return nil
}

// find returns the stored match at round/position.
func (f *FakeBracketRepo) find(round, position int) *bracketdb.Match {
	for _, m := range f.matches {
		if m.Round == round && m.Position == position {
			return m
		}
	}
	return nil
}

var _ bracketdb.Repository = (*FakeBracketRepo)(nil)

// ------------------------
// Fake ports
// ------------------------

type FakeChampionshipLookup struct {
	Info  *ChampionshipInfo
	Err   error
	Locks int
}

func (f *FakeChampionshipLookup) LockChampionship(context.Context, bun.IDB, uuid.UUID) (*ChampionshipInfo, error) {
	f.Locks++
	return f.Info, f.Err
}

type FakeAthleteSource struct {
	IDs   []uuid.UUID
	names map[uuid.UUID]string
}

func NewFakeAthleteSource(n int) *FakeAthleteSource {
	f := &FakeAthleteSource{names: map[uuid.UUID]string{}}
	for i := 0; i < n; i++ {
		id := uuid.New()
		f.IDs = append(f.IDs, id)
		f.names[id] = "Athlete " + string(rune('A'+i))
	}
	return f
}

func (f *FakeAthleteSource) ListIDs(context.Context, bun.IDB, uuid.UUID) ([]uuid.UUID, error) {
	return f.IDs, nil
}

func (f *FakeAthleteSource) Names(context.Context, bun.IDB, uuid.UUID) (map[uuid.UUID]string, error) {
	return f.names, nil
}

type FakePerformanceTotals struct {
	Totals map[uuid.UUID]float64
}

func (f *FakePerformanceTotals) TotalsByMatch(context.Context, bun.IDB, uuid.UUID) (map[uuid.UUID]float64, error) {
	return f.Totals, nil
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
