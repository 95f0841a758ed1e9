package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret falls back to a fixed development value when unset. That
	// fallback is a documented weakness, not a design goal; set JWT_SECRET
	// in any real deployment.
	JWTSecret string        `env:"JWT_SECRET, default=your-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`

	// AuthRequired attaches the authentication gate to the /api/user routes.
	// The default leaves every route public.
	AuthRequired bool `env:"AUTH_REQUIRED, default=false"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_directory"`
}

// RedisConfig is optional: an empty Addr disables the token denylist and the
// Redis readiness check.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
