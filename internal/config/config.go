// Package config manages environment variables.
//
// It reads variables from the process environment (and the `.env` file when
// present), maps them into structured Go types and validates that required
// values are present, so the rest of the application can rely on them.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured config.
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process environment before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix FEDERATION_. The prefix is stripped, the
	key is lowercased and a double underscore marks nesting, so a single
	underscore can still live inside a key name:

	  FEDERATION_DATABASE__HOST              -> database.host
	  FEDERATION_DATABASE__STATEMENT_TIMEOUT -> database.statement_timeout
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "FEDERATION_"

// ServiceName tags logs, traces and APM data for this service.
const ServiceName = "sports-federation"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// ConnMaxLifetime and ConnMaxIdleTime are seconds. StatementTimeout is in
// milliseconds and is sent to the server as the statement_timeout runtime
// parameter, bounding every statement issued by the application. Zero leaves
// the server default in place.
type DatabaseConfig struct {
	Host             string `koanf:"host" validate:"required"`
	Port             int    `koanf:"port" validate:"required"`
	User             string `koanf:"user" validate:"required"`
	Password         string `koanf:"password" validate:"required"`
	Name             string `koanf:"name" validate:"required"`
	SSLMode          string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns     int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns     int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime  int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime  int    `koanf:"conn_max_idle_time" validate:"required"`
	StatementTimeout int    `koanf:"statement_timeout" validate:"min=0"`
}

// StatementTimeoutDuration returns StatementTimeout as a time.Duration.
func (c DatabaseConfig) StatementTimeoutDuration() time.Duration {
	return time.Duration(c.StatementTimeout) * time.Millisecond
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores authentication-related secrets.
//
// SecretKey signs and verifies the HS256 bearer tokens that carry the actor id.
type AuthConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required,min=32"`
}

// envKey maps a raw environment variable name to a koanf key path.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, applies defaults and returns the result.
//
// Behavior summary:
//   - Loads env vars with prefix FEDERATION_
//   - Converts env keys into koanf keys using "." nesting
//   - Validates required config blocks/fields
//   - Sets default observability if missing and forces service name + environment
//   - Validates observability config as well
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service naming is not configurable so telemetry stays consistent.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
