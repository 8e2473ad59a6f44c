package ladderintegrationtests

import (
	"context"
	"log"
	"sync"
	"testing"
	"time"

	ladderservice "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/application"
	ladderpublisher "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/publisher"
	ladderdb "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/repositories"
	ladderutil "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/utils"
	"github.com/Black-And-White-Club/padel-ladder/integration_tests/testutils"
	"github.com/Black-And-White-Club/padel-ladder/pkg/eventbus"
	"github.com/Black-And-White-Club/padel-ladder/pkg/metrics/laddermetrics"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

// TestDeps holds dependencies needed by individual tests.
type TestDeps struct {
	Ctx     context.Context
	BunDB   *bun.DB
	Service ladderservice.Service
	Gen     *testutils.TestDataGenerator
	Clock   *ladderutil.FakeClock
	Bus     eventbus.EventBus

	mu  sync.Mutex
	now time.Time
}

// Advance moves the service clock forward.
func (d *TestDeps) Advance(by time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.now = d.now.Add(by)
}

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()

	testEnvOnce.Do(func() {
		log.Println("Initializing ladder test environment...")
		testEnv, testEnvErr = testutils.NewTestEnvironment(t)
	})

	if testEnvErr != nil {
		t.Fatalf("Ladder test environment initialization failed: %v", testEnvErr)
	}
	return testEnv
}

func SetupTestLadderService(t *testing.T) *TestDeps {
	t.Helper()

	env := GetTestEnv(t)

	resetCtx, resetCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer resetCancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	logger := testutils.TestLogger(t)
	deps := &TestDeps{
		Ctx:   env.Ctx,
		BunDB: env.DB,
		Gen:   testutils.NewTestDataGenerator(),
		Bus:   eventbus.NewInMemoryEventBus(logger),
		now:   time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
	deps.Clock = &ladderutil.FakeClock{NowFn: func() time.Time {
		deps.mu.Lock()
		defer deps.mu.Unlock()
		return deps.now
	}}

	publisher := ladderpublisher.NewEventPublisher(deps.Bus, logger)
	deps.Service = ladderservice.NewLadderService(
		ladderdb.NewRepository(),
		logger,
		laddermetrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test_ladder_service"),
		env.DB,
		publisher,
		publisher,
		deps.Clock,
		ladderservice.Options{ConflictRetries: 3},
	)

	t.Cleanup(func() { deps.Bus.Close() })
	return deps
}
