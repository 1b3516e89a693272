package testutils

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/uptrace/bun"
)

// AppTables lists every application table, children first.
var AppTables = []string{"performances", "matches", "athletes", "tricks", "championships"}

var (
	sharedEnv     *TestEnvironment
	sharedEnvErr  error
	sharedEnvOnce sync.Once
)

// GetOrCreateTestEnv returns the package-wide environment, starting the
// containers on first use. Callers release it with CleanupSharedEnv from
// TestMain.
func GetOrCreateTestEnv(t *testing.T) *TestEnvironment {
	t.Helper()
	sharedEnvOnce.Do(func() {
		sharedEnv, sharedEnvErr = NewTestEnvironment(context.Background())
	})
	if sharedEnvErr != nil {
		t.Fatalf("Failed to set up test environment: %v", sharedEnvErr)
	}
	return sharedEnv
}

// CleanupSharedEnv terminates the environment created by GetOrCreateTestEnv.
func CleanupSharedEnv() {
	if sharedEnv != nil {
		sharedEnv.Cleanup()
	}
}

// TruncateTables empties tables and resets dependent rows.
func TruncateTables(ctx context.Context, db bun.IDB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(tables, ", "))
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables %v: %w", tables, err)
	}
	return nil
}

// CountRows returns the number of rows in table matching where.
func CountRows(ctx context.Context, db bun.IDB, table, where string, args ...any) (int, error) {
	q := db.NewSelect().Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	n, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}
