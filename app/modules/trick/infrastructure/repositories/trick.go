package trickdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrNotFound is returned when a trick is not found.
	ErrNotFound = errors.New("trick not found")
	// ErrDuplicateName is returned when the case-insensitive name is taken.
	ErrDuplicateName = errors.New("trick name already exists")
)

const uniqueViolation = "23505"

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new trick repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) Create(ctx context.Context, db bun.IDB, trick *Trick) error {
	db = r.resolveDB(db)
	if trick.CreatedAt.IsZero() {
		trick.CreatedAt = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(trick).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to create trick: %w", err)
	}
	return nil
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Trick, error) {
	db = r.resolveDB(db)
	t := new(Trick)
	if err := db.NewSelect().Model(t).Where("t.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trick: %w", err)
	}
	return t, nil
}

func (r *Impl) List(ctx context.Context, db bun.IDB, filter Filter) ([]Trick, error) {
	db = r.resolveDB(db)
	var out []Trick
	q := db.NewSelect().Model(&out)
	if query := strings.TrimSpace(filter.Query); query != "" {
		q = q.Where("t.name ILIKE ?", "%"+escapeLike(query)+"%")
	}
	if filter.Type != "" {
		q = q.Where("t.type = ?", filter.Type)
	}
	if err := q.OrderExpr("lower(t.name) ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list tricks: %w", err)
	}
	return out, nil
}

func (r *Impl) ListByIDs(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]Trick, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db = r.resolveDB(db)
	var out []Trick
	if err := db.NewSelect().Model(&out).Where("t.id IN (?)", bun.In(ids)).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list tricks by id: %w", err)
	}
	return out, nil
}

func (r *Impl) Seed(ctx context.Context, db bun.IDB, tricks []*Trick) (int, error) {
	if len(tricks) == 0 {
		return 0, nil
	}
	db = r.resolveDB(db)
	now := time.Now().UTC()
	for _, t := range tricks {
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
	}
	result, err := db.NewInsert().
		Model(&tricks).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to seed tricks: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rows), nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// isUniqueViolation recognizes unique violations from both pgdriver and pgx.
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == uniqueViolation
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == uniqueViolation
	}
	return false
}
