package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// DriverMemory keeps records in process memory; only allowed in dev environments.
	DriverMemory = "memory"
	// DriverPostgres stores records in PostgreSQL via pgxpool.
	DriverPostgres = "postgres"
	// DriverSQLite stores records in an embedded SQLite file.
	DriverSQLite = "sqlite"

	minSecretLength = 32
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName   string `envconfig:"APP_NAME" default:"PropNest"`
	AppEnv    string `envconfig:"APP_ENV" default:"development"`
	Port      string `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"memory"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"propnest.db"`
	RedisURL    string `envconfig:"REDIS_URL"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"10h"`

	ReadTimeout    time.Duration `envconfig:"READ_TIMEOUT" default:"30s"`
	WriteTimeout   time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	ShutdownPeriod time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`

	BootstrapUsername string `envconfig:"BOOTSTRAP_USERNAME"`
	BootstrapPassword string `envconfig:"BOOTSTRAP_PASSWORD"`
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.StoreDriver = strings.ToLower(cfg.StoreDriver)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c Config) Validate() error {
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}

	switch c.StoreDriver {
	case DriverMemory:
		if !c.IsDev() {
			return fmt.Errorf("STORE_DRIVER=%s is not allowed when APP_ENV=%s", DriverMemory, c.AppEnv)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set when STORE_DRIVER=%s", DriverPostgres)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must be set when STORE_DRIVER=%s", DriverSQLite)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if (c.BootstrapUsername == "") != (c.BootstrapPassword == "") {
		return fmt.Errorf("BOOTSTRAP_USERNAME and BOOTSTRAP_PASSWORD must be set together")
	}
	return nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the configured environment is a local development one.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
