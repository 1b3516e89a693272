package bracketservice

import (
	"context"
	"fmt"
	"time"

	bracketdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/domain"
	bracketdb "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// matchStore is where advancement reads and writes successor matches.
type matchStore interface {
	load(ctx context.Context, id uuid.UUID) (*bracketdb.Match, error)
	save(ctx context.Context, m *bracketdb.Match) error
}

// advancement records what completing a match caused downstream.
type advancement struct {
	// autoAdvanced lists successors completed as byes.
	autoAdvanced []uuid.UUID
	// final is set once the last match of the bracket is completed.
	final *bracketdb.Match
}

// advance moves the winner of the completed match m into its successor. A
// successor with a single feeder can never get an opponent, so it completes
// at once and the walk continues from it.
func advance(ctx context.Context, store matchStore, m *bracketdb.Match, now time.Time) (advancement, error) {
	var out advancement
	for {
		if m.WinnerID == nil {
			return out, fmt.Errorf("match %s completed without a winner", m.ID)
		}
		if m.IsFinal() {
			out.final = m
			return out, nil
		}

		next, err := store.load(ctx, *m.NextMatchID)
		if err != nil {
			return out, fmt.Errorf("failed to load next match: %w", err)
		}
		next.SetSlot(m.NextSlot, *m.WinnerID)

		if next.Feeders != 1 {
			return out, store.save(ctx, next)
		}

		completeAsBye(next, *m.WinnerID, now)
		if err := store.save(ctx, next); err != nil {
			return out, err
		}
		out.autoAdvanced = append(out.autoAdvanced, next.ID)
		m = next
	}
}

func completeAsBye(m *bracketdb.Match, winner uuid.UUID, now time.Time) {
	w := winner
	completed := now
	m.WinnerID = &w
	m.Status = bracketdomain.StatusCompleted
	m.CompletedAt = &completed
}

// memoryStore advances a bracket that has not been inserted yet.
type memoryStore map[uuid.UUID]*bracketdb.Match

func (s memoryStore) load(_ context.Context, id uuid.UUID) (*bracketdb.Match, error) {
	m, ok := s[id]
	if !ok {
		return nil, bracketdb.ErrNotFound
	}
	return m, nil
}

func (s memoryStore) save(context.Context, *bracketdb.Match) error { return nil }

// dbStore advances a stored bracket, locking each successor it touches.
type dbStore struct {
	repo bracketdb.Repository
	db   bun.IDB
}

func (s dbStore) load(ctx context.Context, id uuid.UUID) (*bracketdb.Match, error) {
	return s.repo.GetByIDForUpdate(ctx, s.db, id)
}

func (s dbStore) save(ctx context.Context, m *bracketdb.Match) error {
	return s.repo.UpdateMatch(ctx, s.db, m)
}

// buildMatches turns seeder output into rows linked by ID, with round-1 byes
// already advanced.
func buildMatches(ctx context.Context, championshipID uuid.UUID, planned []bracketdomain.PlannedMatch, now time.Time) ([]*bracketdb.Match, error) {
	rows := make([]*bracketdb.Match, len(planned))
	bySlot := make(map[bracketdomain.Slot]*bracketdb.Match, len(planned))
	for i, p := range planned {
		m := &bracketdb.Match{
			ID:             uuid.New(),
			ChampionshipID: championshipID,
			Round:          p.Round,
			Position:       p.Position,
			Athlete1ID:     p.Athlete1,
			Athlete2ID:     p.Athlete2,
			WinnerID:       p.Winner,
			Status:         p.Status,
			NextSlot:       p.NextSlot,
			Feeders:        p.Feeders,
		}
		if p.Status == bracketdomain.StatusCompleted {
			completed := now
			m.CompletedAt = &completed
		}
		rows[i] = m
		bySlot[bracketdomain.Slot{Round: p.Round, Position: p.Position}] = m
	}

	store := make(memoryStore, len(rows))
	for i, p := range planned {
		if p.Next != nil {
			next, ok := bySlot[*p.Next]
			if !ok {
				return nil, fmt.Errorf("seeded match %d/%d links to missing %d/%d", p.Round, p.Position, p.Next.Round, p.Next.Position)
			}
			id := next.ID
			rows[i].NextMatchID = &id
		}
		store[rows[i].ID] = rows[i]
	}

	for i, p := range planned {
		if p.Round == 1 && p.IsBye() {
			if _, err := advance(ctx, store, rows[i], now); err != nil {
				return nil, err
			}
		}
	}
	return rows, nil
}
