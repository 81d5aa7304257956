package e2e

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	MasterAddr string `envconfig:"MASTER_ADDR"`
	// AUTH_SECRET must match the master to mint test tokens
	AuthSecret string `envconfig:"AUTH_SECRET"`
	// E2E_DEBUG_JSON dumps full gRPC request/response bodies as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool          `envconfig:"E2E_COLOURS" default:"true"`
	Timeout time.Duration `envconfig:"E2E_TIMEOUT" default:"30s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
