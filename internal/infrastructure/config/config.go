package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIBaseURL string        `env:"API_BASE_URL, default=http://localhost:8080"`
	APITimeout time.Duration `env:"API_TIMEOUT,  default=15s"`
	Env        string        `env:"ENV,          default=development"`
	LogLevel   string        `env:"LOG_LEVEL,    default=info"`
	TokenFile  string        `env:"TOKEN_FILE,   default=.storefront/token"`

	Redis RedisConfig
}

// RedisConfig is only consulted when a shared terminal session is wanted;
// TerminalID empty means the file token store is used instead.
type RedisConfig struct {
	Addr       string `env:"REDIS_ADDR,  default=localhost:6379"`
	DB         int    `env:"REDIS_DB,    default=0"`
	TerminalID string `env:"TERMINAL_ID"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger *slog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error("Failed to load configuration", "error", err)
		panic(err)
	}
	return &cfg
}
