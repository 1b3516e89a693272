package athletedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when an athlete is not found.
var ErrNotFound = errors.New("athlete not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new athlete repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Create inserts athletes in a single statement.
func (r *Impl) Create(ctx context.Context, db bun.IDB, athletes ...*Athlete) error {
	if len(athletes) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	now := time.Now().UTC()
	for _, a := range athletes {
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
	}
	if _, err := db.NewInsert().Model(&athletes).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create athletes: %w", err)
	}
	return nil
}

// GetByID retrieves an athlete by ID.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Athlete, error) {
	db = r.resolveDB(db)
	a := new(Athlete)
	if err := db.NewSelect().Model(a).Where("a.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get athlete: %w", err)
	}
	return a, nil
}

// ListByChampionship returns the athletes ordered by name.
func (r *Impl) ListByChampionship(ctx context.Context, db bun.IDB, championshipID uuid.UUID) ([]Athlete, error) {
	db = r.resolveDB(db)
	var out []Athlete
	err := db.NewSelect().
		Model(&out).
		Where("a.championship_id = ?", championshipID).
		OrderExpr("lower(a.name) ASC, a.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list athletes: %w", err)
	}
	return out, nil
}

// ListIDs returns athlete IDs in registration order.
func (r *Impl) ListIDs(ctx context.Context, db bun.IDB, championshipID uuid.UUID) ([]uuid.UUID, error) {
	db = r.resolveDB(db)
	var ids []uuid.UUID
	err := db.NewSelect().
		Model((*Athlete)(nil)).
		Column("id").
		Where("championship_id = ?", championshipID).
		Order("created_at ASC", "id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list athlete ids: %w", err)
	}
	return ids, nil
}

// CountByChampionships counts athletes across championships.
func (r *Impl) CountByChampionships(ctx context.Context, db bun.IDB, championshipIDs []uuid.UUID) (int, error) {
	if len(championshipIDs) == 0 {
		return 0, nil
	}
	db = r.resolveDB(db)
	count, err := db.NewSelect().
		Model((*Athlete)(nil)).
		Where("championship_id IN (?)", bun.In(championshipIDs)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count athletes: %w", err)
	}
	return count, nil
}

// Delete removes an athlete.
func (r *Impl) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Athlete)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete athlete: %w", err)
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
