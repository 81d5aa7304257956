package internal

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Host                 string        `env:"HOST,default=0.0.0.0"`
	Port                 int           `env:"PORT,required=true" validate:"gt=0,lt=65536"`
	DebugPort            int           `env:"DEBUG_PORT" validate:"gte=0,lt=65536"`
	LogLevel             string        `env:"LOG_LEVEL,required=true"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true" validate:"required"`
	BufferSize           int           `env:"BUFFER_SIZE,required=true" validate:"gt=0"`
	SubscriberBufferSize int           `env:"SUBSCRIBER_BUFFER_SIZE,required=true" validate:"gt=0"`
	LimitMessages        *int          `env:"LIMIT_MESSAGES" validate:"omitempty,gt=0"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,required=true" validate:"gt=0"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,required=true" validate:"gt=0"`
	InitialLoadAttempts  int           `env:"INITIAL_LOAD_ATTEMPTS,default=3" validate:"gt=0"`
	InitialLoadBackoff   time.Duration `env:"INITIAL_LOAD_BACKOFF,default=100ms" validate:"gte=0"`
	AuthSecret           string        `env:"AUTH_SECRET,required=true" validate:"min=16"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,required=true" validate:"gt=0"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=30s" validate:"gt=0"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=80" validate:"gt=0,lte=100"`
}

// Validate checks the ranges env tags cannot express.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}
