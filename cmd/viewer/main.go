// Command viewer serves the Badger inspector on a read-only copy of the store.
package main

import (
	"barber-lab/internal"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

type Config struct {
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	DebugPort      int    `env:"DEBUG_PORT,default=8081"`
	LogLevel       string `env:"LOG_LEVEL,default=INFO"`
}

func main() {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(2)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	// BypassLockGuard allows opening while the master holds the lock
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	stats := func() map[string]any {
		return map[string]any{
			"status": "viewer (read-only)",
			"time":   time.Now().Format(time.RFC822),
		}
	}
	mux := http.NewServeMux()
	mux.Handle("/inspect", internal.NewInspectHandler(db, internal.KeyMapper, stats))

	logger.Info("Viewer started", "url", fmt.Sprintf("http://localhost:%d/inspect", config.DebugPort))
	if err := http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", config.DebugPort), mux); err != nil {
		logger.Error("Viewer stopped", "error", err)
	}
}
