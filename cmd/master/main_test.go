package main

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestAwaitShutdown_Runs_Steps_On_Signal(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var order []string
	err := awaitShutdown(ctx, logs.GetLoggerFromLevel(slog.LevelDebug), make(chan error),
		func() { order = append(order, "streams") },
		func() { order = append(order, "server") },
		func() { order = append(order, "orchestrator") })

	req.NoError(err)
	req.Equal([]string{"streams", "server", "orchestrator"}, order)
}

func TestAwaitShutdown_Runs_Steps_On_Server_Failure(t *testing.T) {
	req := require.New(t)
	errChan := make(chan error, 1)
	failure := errors.New("gRPC server error: listener closed")
	errChan <- failure

	var order []string
	err := awaitShutdown(context.Background(), logs.GetLoggerFromLevel(slog.LevelDebug), errChan,
		func() { order = append(order, "streams") },
		func() { order = append(order, "server") },
		func() { order = append(order, "orchestrator") })

	// The failure is reported after every step ran
	req.ErrorIs(err, failure)
	req.Equal([]string{"streams", "server", "orchestrator"}, order)
}
