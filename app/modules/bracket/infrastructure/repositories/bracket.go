package bracketdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a match is not found.
var ErrNotFound = errors.New("match not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new bracket repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CountByChampionship(ctx context.Context, db bun.IDB, championshipID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	count, err := db.NewSelect().
		Model((*Match)(nil)).
		Where("championship_id = ?", championshipID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

func (r *Impl) InsertMatches(ctx context.Context, db bun.IDB, matches []*Match) error {
	if len(matches) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	now := time.Now().UTC()
	for _, m := range matches {
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		m.UpdatedAt = now
	}
	if _, err := db.NewInsert().Model(&matches).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert matches: %w", err)
	}
	return nil
}

func (r *Impl) DeleteByChampionship(ctx context.Context, db bun.IDB, championshipID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Match)(nil)).
		Where("championship_id = ?", championshipID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete matches: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rows), nil
}

func (r *Impl) ListByChampionship(ctx context.Context, db bun.IDB, championshipID uuid.UUID) ([]Match, error) {
	db = r.resolveDB(db)
	var out []Match
	err := db.NewSelect().
		Model(&out).
		Where("m.championship_id = ?", championshipID).
		Order("m.round ASC", "m.position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return out, nil
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Match, error) {
	return r.get(ctx, r.resolveDB(db), id, false)
}

func (r *Impl) GetByIDForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*Match, error) {
	return r.get(ctx, r.resolveDB(db), id, true)
}

func (r *Impl) get(ctx context.Context, db bun.IDB, id uuid.UUID, lock bool) (*Match, error) {
	m := new(Match)
	q := db.NewSelect().Model(m).Where("m.id = ?", id)
	if lock {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

func (r *Impl) UpdateMatch(ctx context.Context, db bun.IDB, match *Match) error {
	db = r.resolveDB(db)
	match.UpdatedAt = time.Now().UTC()
	result, err := db.NewUpdate().
		Model(match).
		Column("athlete1_id", "athlete2_id", "winner_id", "status", "started_at", "completed_at", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
