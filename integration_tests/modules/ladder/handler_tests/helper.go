package ladderhandlerintegrationtests

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Black-And-White-Club/padel-ladder/app/modules/ladder"
	ladderutil "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/utils"
	"github.com/Black-And-White-Club/padel-ladder/integration_tests/testutils"
	"github.com/Black-And-White-Club/padel-ladder/pkg/metrics/laddermetrics"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()
	testEnvOnce.Do(func() {
		testEnv, testEnvErr = testutils.NewTestEnvironment(t)
	})
	if testEnvErr != nil {
		t.Fatalf("Ladder handler test environment initialization failed: %v", testEnvErr)
	}
	return testEnv
}

// HandlerDeps is a running ladder module wired to the shared NATS container.
type HandlerDeps struct {
	Ctx    context.Context
	Env    *testutils.TestEnvironment
	Module *ladder.Module
	Gen    *testutils.TestDataGenerator
}

func SetupTestLadderHandler(t *testing.T) HandlerDeps {
	t.Helper()

	env := GetTestEnv(t)
	resetCtx, resetCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer resetCancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	logger := testutils.TestLogger(t)
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 5 * time.Second}, watermill.NewSlogLogger(logger))
	if err != nil {
		t.Fatalf("Failed to create router: %v", err)
	}

	ctx, cancel := context.WithCancel(env.Ctx)
	module, err := ladder.NewLadderModule(ctx, env.Config, ladder.Dependencies{
		Logger:   logger,
		Tracer:   noop.NewTracerProvider().Tracer("test_ladder_handlers"),
		Metrics:  laddermetrics.NewNoop(),
		DB:       env.DB,
		EventBus: env.EventBus,
		Router:   router,
		Clock:    ladderutil.RealClock{},
	})
	if err != nil {
		cancel()
		t.Fatalf("Failed to create ladder module: %v", err)
	}

	go func() {
		if err := router.Run(ctx); err != nil {
			t.Logf("router stopped: %v", err)
		}
	}()
	select {
	case <-router.Running():
	case <-time.After(10 * time.Second):
		cancel()
		t.Fatal("router did not start")
	}

	t.Cleanup(func() {
		cancel()
		if err := module.Close(); err != nil {
			t.Logf("module close: %v", err)
		}
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		module.Queue.Stop(stopCtx)
	})

	return HandlerDeps{Ctx: ctx, Env: env, Module: module, Gen: testutils.NewTestDataGenerator()}
}

// Publish sends payload to topic with a correlation ID.
func (d HandlerDeps) Publish(t *testing.T, topic, correlationID string, payload any) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	middleware.SetCorrelationID(correlationID, msg)
	if err := d.Env.EventBus.Publish(topic, msg); err != nil {
		t.Fatalf("publish %s: %v", topic, err)
	}
}

// Await returns the first message on ch with the correlation ID, acking everything it reads.
func Await(t *testing.T, ch <-chan *message.Message, correlationID string, timeout time.Duration) *message.Message {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				t.Fatal("subscription closed")
			}
			msg.Ack()
			if middleware.MessageCorrelationID(msg) == correlationID {
				return msg
			}
		case <-deadline:
			t.Fatalf("no message with correlation ID %s within %s", correlationID, timeout)
			return nil
		}
	}
}
