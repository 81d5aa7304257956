package main

import (
	pb "barber-lab/api/booking/v1"
	"barber-lab/auth"
	"barber-lab/domain"
	"barber-lab/infrastructure/grpc/server"
	"barber-lab/internal"
	"barber-lab/repositories"
	"barber-lab/runtime"
	"barber-lab/runtime/workers"
	"barber-lab/services"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	grpc3 "github.com/mama165/sdk-go/grpc"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
)

// Exit codes to provide meaningful status to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Master terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal or a server failure.
// Returning instead of exiting lets the deferred closes run.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Supervision & live updates
	sup := workers.NewSupervisor(logger, config.RestartInterval)
	registry := runtime.NewRegistry()
	orchestrator := runtime.NewOrchestrator(logger, sup, registry,
		config.BufferSize, config.SubscriberBufferSize, config.SinkTimeout)

	monitor, err := workers.NewHealthMonitor(logger, orchestrator.QueueUsage, registry.Topics,
		config.MetricInterval, config.LowCapacityThreshold)
	if err != nil {
		return exitRuntime, fmt.Errorf("health monitor: %w", err)
	}
	sup.Add(monitor)

	if config.DebugPort > 0 {
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		internal.StartDebugServer(logger, db, config.DebugPort, endpoint, internal.KeyMapper, monitor.Stats)
	}

	// 4. Services
	clock := domain.NewMonotonicClock(nil)
	retry := services.RetryPolicy{Attempts: config.InitialLoadAttempts, Backoff: config.InitialLoadBackoff}
	messageRepository := repositories.NewMessageRepository(db, logger, config.LimitMessages)
	profileRepository := repositories.NewProfileRepository(db)
	appointmentRepository := repositories.NewAppointmentRepository(db, logger)

	messaging := services.NewMessagingService(logger, messageRepository, orchestrator, clock, retry, config.SubscriberBufferSize)
	directory := services.NewDirectoryService(logger, messageRepository, profileRepository, orchestrator, retry, config.SubscriberBufferSize)
	intake := services.NewIntakeService(logger, appointmentRepository, orchestrator, clock)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errChan := make(chan error, 2)

	go func() {
		logger.Info("Starting orchestrator...")
		if err := orchestrator.Start(ctx); err != nil {
			errChan <- fmt.Errorf("orchestrator error: %w", err)
		}
	}()

	// 6. gRPC Server Setup
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	issuer := auth.NewIssuer(config.AuthSecret, config.AuthTokenDuration)
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc3.UnaryLoggingInterceptor(logger),
			issuer.UnaryInterceptor(),
		),
		grpc.ChainStreamInterceptor(issuer.StreamInterceptor()),
	)
	bookingServer := server.NewBookingServer(logger, messaging, directory, intake)
	pb.RegisterBookingServiceServer(s, bookingServer)

	go func() {
		logger.Info("Starting gRPC server", "address", address, "at", time.Now().UTC())
		for serviceName := range s.GetServiceInfo() {
			logger.Debug("gRPC exposed services", "name", serviceName)
		}
		if err := s.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error, then shut down: streams end first,
	// so every live view releases its subscription.
	if err := awaitShutdown(ctx, logger, errChan, bookingServer.Close, s.GracefulStop, orchestrator.Stop); err != nil {
		return exitRuntime, err
	}
	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

// awaitShutdown blocks until a signal or a component failure and runs the steps in order either way.
// It returns the failure, if any.
func awaitShutdown(ctx context.Context, logger *slog.Logger, errChan <-chan error, steps ...func()) error {
	var failure error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case failure = <-errChan:
		logger.Error("Component failed, shutting down", "error", failure)
	}
	logger.Info("Shutting down gracefully...")
	for _, step := range steps {
		step()
	}
	return failure
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.INFO)
}
