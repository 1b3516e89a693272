package championshipdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	championshipdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a championship is not found.
var ErrNotFound = errors.New("championship not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new championship repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Create inserts a new championship.
func (r *Impl) Create(ctx context.Context, db bun.IDB, c *Championship) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := db.NewInsert().Model(c).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create championship: %w", err)
	}
	return nil
}

// GetByID retrieves a championship by ID.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Championship, error) {
	return r.get(ctx, r.resolveDB(db), id, false)
}

// GetByIDForUpdate retrieves a championship with a row lock.
func (r *Impl) GetByIDForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*Championship, error) {
	return r.get(ctx, r.resolveDB(db), id, true)
}

func (r *Impl) get(ctx context.Context, db bun.IDB, id uuid.UUID, lock bool) (*Championship, error) {
	c := new(Championship)
	q := db.NewSelect().Model(c).Where("c.id = ?", id)
	if lock {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get championship: %w", err)
	}
	return c, nil
}

// ListByCreator returns the creator's championships, newest date first.
func (r *Impl) ListByCreator(ctx context.Context, db bun.IDB, createdBy string, status *championshipdomain.Status, limit int) ([]Championship, error) {
	db = r.resolveDB(db)
	var out []Championship
	q := db.NewSelect().
		Model(&out).
		Where("c.created_by = ?", createdBy).
		Order("c.date DESC", "c.created_at DESC")
	if status != nil {
		q = q.Where("c.status = ?", *status)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list championships: %w", err)
	}
	return out, nil
}

// UpdateStatus sets the status and optionally the winner.
func (r *Impl) UpdateStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status championshipdomain.Status, winnerID *uuid.UUID) error {
	db = r.resolveDB(db)
	q := db.NewUpdate().
		Model((*Championship)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id)
	if winnerID != nil {
		q = q.Set("winner_id = ?", *winnerID)
	}
	result, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update championship status: %w", err)
	}
	return requireRow(result)
}

// Delete removes a championship.
func (r *Impl) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Championship)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete championship: %w", err)
	}
	return requireRow(result)
}

// CountByStatus returns a histogram of the creator's championships by status.
func (r *Impl) CountByStatus(ctx context.Context, db bun.IDB, createdBy string) (map[championshipdomain.Status]int, error) {
	db = r.resolveDB(db)
	var rows []StatusCount
	err := db.NewSelect().
		Model((*Championship)(nil)).
		Column("status").
		ColumnExpr("COUNT(*) AS count").
		Where("created_by = ?", createdBy).
		Group("status").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to count championships: %w", err)
	}

	counts := map[championshipdomain.Status]int{
		championshipdomain.StatusDraft:     0,
		championshipdomain.StatusActive:    0,
		championshipdomain.StatusCompleted: 0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
