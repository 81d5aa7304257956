package services

import (
	"barber-lab/domain"
	"barber-lab/repositories"
	"barber-lab/runtime"
	"barber-lab/runtime/workers"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	log          *slog.Logger
	db           *badger.DB
	registry     *runtime.Registry
	orchestrator *runtime.Orchestrator
	clock        *domain.MonotonicClock
	messages     repositories.MessageRepository
	appointments repositories.AppointmentRepository
	profiles     repositories.IProfileRepository
}

var fastRetry = RetryPolicy{Attempts: 3, Backoff: time.Millisecond}

// newTestEnv opens a real Badger and runs the orchestrator until the test ends.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)

	registry := runtime.NewRegistry()
	orchestrator := runtime.NewOrchestrator(log, workers.NewSupervisor(log, 10*time.Millisecond),
		registry, 100, 10, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = orchestrator.Start(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		orchestrator.Stop()
		cancel()
		<-done
		_ = db.Close()
	})

	return &testEnv{
		log:          log,
		db:           db,
		registry:     registry,
		orchestrator: orchestrator,
		clock:        domain.NewMonotonicClock(nil),
		messages:     repositories.NewMessageRepository(db, log, nil),
		appointments: repositories.NewAppointmentRepository(db, log),
		profiles:     repositories.NewProfileRepository(db),
	}
}

func (e *testEnv) messaging() *MessagingService {
	return NewMessagingService(e.log, e.messages, e.orchestrator, e.clock, fastRetry, 10)
}

func (e *testEnv) directory() *DirectoryService {
	return NewDirectoryService(e.log, e.messages, e.profiles, e.orchestrator, fastRetry, 10)
}

func (e *testEnv) intake() *IntakeService {
	return NewIntakeService(e.log, e.appointments, e.orchestrator, e.clock)
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		require.Fail(t, "nothing received in time")
	}
	var zero T
	return zero
}
