//go:build integration

package performanceintegrationtests

import (
	"context"
	"testing"

	athletedb "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/repositories"
	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	bracketservice "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/application"
	bracketadapters "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/adapters"
	bracketdb "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/repositories"
	championshipdb "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/repositories"
	performanceservice "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/application"
	performanceadapters "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/infrastructure/adapters"
	performancedb "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/infrastructure/repositories"
	trickdb "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/integration_tests/testutils"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability/metrics"
	"go.opentelemetry.io/otel/trace/noop"
)

var organizer = &authdomain.Claims{Subject: "organizer-1", Role: authdomain.RoleAuthenticated}

type TestDeps struct {
	Ctx          context.Context
	Env          *testutils.TestEnvironment
	Performances *performanceservice.PerformanceService
	Brackets     *bracketservice.BracketService
}

func SetupTestPerformanceService(t *testing.T) TestDeps {
	t.Helper()

	env := testutils.GetOrCreateTestEnv(t)
	if err := testutils.TruncateTables(env.Ctx, env.DB, testutils.AppTables...); err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	tracer := noop.NewTracerProvider().Tracer("test_performance_service")
	matches := bracketdb.NewRepository(env.DB)
	championships := championshipdb.NewRepository(env.DB)
	athletes := athletedb.NewRepository(env.DB)
	performances := performancedb.NewRepository(env.DB)

	brackets := bracketservice.NewBracketService(
		matches,
		bracketadapters.NewChampionshipLookupAdapter(championships),
		bracketadapters.NewAthleteSourceAdapter(athletes),
		bracketadapters.NewPerformanceTotalsAdapter(performances),
		nil,
		"",
		env.EventBus,
		env.Logger,
		metrics.NewNoop(),
		tracer,
		env.DB,
	)
	service := performanceservice.NewPerformanceService(
		performances,
		performanceadapters.NewMatchLookupAdapter(matches),
		performanceadapters.NewChampionshipOwnerAdapter(championships),
		performanceadapters.NewTrickCatalogAdapter(trickdb.NewRepository(env.DB)),
		performanceadapters.NewAthleteNamesAdapter(athletes),
		env.Logger,
		metrics.NewNoop(),
		tracer,
		env.DB,
	)

	return TestDeps{Ctx: env.Ctx, Env: env, Performances: service, Brackets: brackets}
}
