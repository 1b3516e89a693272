//go:build integration

package bracketintegrationtests

import (
	"context"
	"testing"

	athletedb "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/repositories"
	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	bracketservice "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/application"
	bracketadapters "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/adapters"
	bracketdb "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/repositories"
	championshipdb "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/repositories"
	performancedb "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/integration_tests/testutils"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability/metrics"
	"go.opentelemetry.io/otel/trace/noop"
)

var organizer = &authdomain.Claims{Subject: "organizer-1", Role: authdomain.RoleAuthenticated}

type TestDeps struct {
	Ctx     context.Context
	Env     *testutils.TestEnvironment
	Repo    bracketdb.Repository
	Service *bracketservice.BracketService
}

func SetupTestBracketService(t *testing.T) TestDeps {
	t.Helper()

	env := testutils.GetOrCreateTestEnv(t)
	if err := testutils.TruncateTables(env.Ctx, env.DB, testutils.AppTables...); err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	repo := bracketdb.NewRepository(env.DB)
	service := bracketservice.NewBracketService(
		repo,
		bracketadapters.NewChampionshipLookupAdapter(championshipdb.NewRepository(env.DB)),
		bracketadapters.NewAthleteSourceAdapter(athletedb.NewRepository(env.DB)),
		bracketadapters.NewPerformanceTotalsAdapter(performancedb.NewRepository(env.DB)),
		nil,
		"",
		env.EventBus,
		env.Logger,
		metrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test_bracket_service"),
		env.DB,
	)

	return TestDeps{Ctx: env.Ctx, Env: env, Repo: repo, Service: service}
}
