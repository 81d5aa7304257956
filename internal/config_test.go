package internal

import (
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func validEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("BADGER_FILEPATH", t.TempDir())
	t.Setenv("BUFFER_SIZE", "100")
	t.Setenv("SUBSCRIBER_BUFFER_SIZE", "10")
	t.Setenv("SINK_TIMEOUT", "1s")
	t.Setenv("RESTART_INTERVAL", "2s")
	t.Setenv("AUTH_SECRET", "a-secret-of-at-least-16-chars")
	t.Setenv("AUTH_TOKEN_DURATION", "24h")
}

func TestConfig_From_Environment(t *testing.T) {
	req := require.New(t)
	validEnv(t)

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.NoError(err)
	req.NoError(config.Validate())
	req.Equal(8080, config.Port)
	req.Equal("0.0.0.0", config.Host)
	req.Equal(3, config.InitialLoadAttempts)
	req.Equal(100*time.Millisecond, config.InitialLoadBackoff)
	req.Nil(config.LimitMessages)
}

func TestConfig_Rejects_Out_Of_Range_Values(t *testing.T) {
	req := require.New(t)
	validEnv(t)
	t.Setenv("AUTH_SECRET", "short")
	t.Setenv("LOW_CAPACITY_THRESHOLD", "150")

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.NoError(err)
	req.Error(config.Validate())
}

func TestConfig_Missing_Required(t *testing.T) {
	req := require.New(t)
	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.Error(err)
}
