// Command seed loads business and customer profiles into the store
// and prints a bearer token for each of them.
package main

import (
	"barber-lab/auth"
	"barber-lab/repositories"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

type Config struct {
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	AuthSecret        string        `env:"AUTH_SECRET"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	path := flag.String("file", "profiles.yaml", "YAML file listing the profiles")
	flag.Parse()

	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	f, err := os.Open(*path)
	if err != nil {
		return exitConfig, err
	}
	defer f.Close()
	profiles, err := LoadProfiles(f)
	if err != nil {
		return exitConfig, err
	}

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer db.Close()

	repository := repositories.NewProfileRepository(db)
	var issuer *auth.Issuer
	if config.AuthSecret != "" {
		issuer = auth.NewIssuer(config.AuthSecret, config.AuthTokenDuration)
	}
	for _, profile := range profiles {
		if err := repository.SaveProfile(profile); err != nil {
			return exitRuntime, fmt.Errorf("save profile %s: %w", profile.ID, err)
		}
		logger.Info("Profile seeded", "id", profile.ID, "kind", profile.Kind, "name", profile.DisplayName())
		if issuer == nil {
			continue
		}
		token, err := issuer.GenerateToken(profile.ID)
		if err != nil {
			return exitRuntime, err
		}
		fmt.Printf("%s\t%s\n", profile.ID, token)
	}
	return exitOK, nil
}
