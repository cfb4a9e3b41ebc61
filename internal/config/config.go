package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	// Common
	Env      string
	LogLevel string `validate:"oneof=debug info warn error dpanic panic fatal"`
	// HTTP (health probes)
	Port string `validate:"required,numeric"`
	// Market-data API
	Provider       string        `validate:"oneof=cryptocompare fake"`
	BaseURL        string        `validate:"required,url"`
	RequestTimeout time.Duration `validate:"gt=0"`
	// Poller
	PollSchedule      string `validate:"required"`
	PollEndpoint      string `validate:"required"`
	PollFromSymbol    string `validate:"required"`
	PollToSymbol      string `validate:"required"`
	PollLimit         uint64
	PollExchange      string
	PollTryConversion bool
	ReadyMaxAge       time.Duration `validate:"gte=0"`
	// Sink
	Sink          string `validate:"oneof=log redis"`
	RedisAddr     string `validate:"required_if=Sink redis"`
	RedisPassword string
	RedisDB       int    `validate:"gte=0"`
	RedisChannel  string `validate:"required_if=Sink redis"`
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func atouDef(s string, def uint64) uint64 {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return def
	}
	return u
}

func boolDef(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

// Load reads environment variables and applies defaults. The poller defaults
// follow the upstream example: ETH/BTC minute bars on CCCAGG every 15 seconds.
func Load() Config {
	return Config{
		Env:               getEnv("ENV", "local"),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Port:              getEnv("PORT", "8080"),
		Provider:          getEnv("PROVIDER", "cryptocompare"),
		BaseURL:           getEnv("CRYPTOCOMPARE_BASE_URL", "https://min-api.cryptocompare.com/data"),
		RequestTimeout:    time.Duration(atoiDef(getEnv("REQUEST_TIMEOUT_MS", "10000"), 10000)) * time.Millisecond,
		PollSchedule:      getEnv("POLL_SCHEDULE", "@every 15s"),
		PollEndpoint:      getEnv("POLL_ENDPOINT", "histominute"),
		PollFromSymbol:    getEnv("POLL_FSYM", "ETH"),
		PollToSymbol:      getEnv("POLL_TSYM", "BTC"),
		PollLimit:         atouDef(getEnv("POLL_LIMIT", "1"), 1),
		PollExchange:      getEnv("POLL_EXCHANGE", "CCCAGG"),
		PollTryConversion: boolDef(getEnv("POLL_TRY_CONVERSION", "false"), false),
		ReadyMaxAge:       time.Duration(atoiDef(getEnv("READY_MAX_AGE_MS", "120000"), 120000)) * time.Millisecond,
		Sink:              getEnv("SINK", "log"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           atoiDef(getEnv("REDIS_DB", "0"), 0),
		RedisChannel:      getEnv("REDIS_CHANNEL", "cryptocompare.candles"),
	}
}

// Validate checks the loaded values before any component is built.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
