package trickservice

import (
	"context"
	"strings"

	trickdb "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type FakeTrickRepo struct {
	trace  []string
	tricks []*trickdb.Trick

	LastFilter trickdb.Filter
}

func (f *FakeTrickRepo) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeTrickRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeTrickRepo) taken(name string) bool {
	for _, t := range f.tricks {
		if strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

func (f *FakeTrickRepo) Create(_ context.Context, _ bun.IDB, trick *trickdb.Trick) error {
	f.record("Create")
	if f.taken(trick.Name) {
		return trickdb.ErrDuplicateName
	}
	f.tricks = append(f.tricks, trick)
	return nil
}

func (f *FakeTrickRepo) GetByID(_ context.Context, _ bun.IDB, id uuid.UUID) (*trickdb.Trick, error) {
	f.record("GetByID")
	for _, t := range f.tricks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, trickdb.ErrNotFound
}

func (f *FakeTrickRepo) List(_ context.Context, _ bun.IDB, filter trickdb.Filter) ([]trickdb.Trick, error) {
	f.record("List")
	f.LastFilter = filter
	var out []trickdb.Trick
	for _, t := range f.tricks {
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(filter.Query)) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *FakeTrickRepo) ListByIDs(_ context.Context, _ bun.IDB, ids []uuid.UUID) ([]trickdb.Trick, error) {
	f.record("ListByIDs")
	var out []trickdb.Trick
	for _, t := range f.tricks {
		for _, id := range ids {
			if t.ID == id {
				out = append(out, *t)
			}
		}
	}
	return out, nil
}

func (f *FakeTrickRepo) Seed(_ context.Context, _ bun.IDB, tricks []*trickdb.Trick) (int, error) {
	f.record("Seed")
	added := 0
	for _, t := range tricks {
		if !f.taken(t.Name) {
			f.tricks = append(f.tricks, t)
			added++
		}
	}
	return added, nil
}

var _ trickdb.Repository = (*FakeTrickRepo)(nil)
