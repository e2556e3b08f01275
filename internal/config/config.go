// Package config loads the application configuration from the environment.
//
// Variables carry the LOCALLIBRARY_ prefix; a double underscore separates
// nesting levels, so LOCALLIBRARY_SERVER__READ_TIMEOUT maps to
// Config.Server.ReadTimeout. A `.env` file in the working directory is loaded
// first when present.
package config

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix   = "LOCALLIBRARY_"
	ServiceName = "locallibrary"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Email         EmailConfig          `koanf:"email"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// RateLimit is the sustained requests per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
	RateBurst int     `koanf:"rate_burst" validate:"min=0"`
}

// DatabaseConfig selects the catalog store. The PostgreSQL fields are only
// required for the postgres driver, the Mongo ones for mongo.
type DatabaseConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=postgres mongo memory"`

	Host            string `koanf:"host" validate:"required_if=Driver postgres"`
	Port            int    `koanf:"port" validate:"required_if=Driver postgres"`
	User            string `koanf:"user" validate:"required_if=Driver postgres"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required_if=Driver postgres"`
	SSLMode         string `koanf:"ssl_mode" validate:"required_if=Driver postgres"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`

	MongoURI      string `koanf:"mongo_uri" validate:"required_if=Driver mongo"`
	MongoDatabase string `koanf:"mongo_database" validate:"required_if=Driver mongo"`
}

// RedisConfig backs the background job queue. An empty Address disables it.
type RedisConfig struct {
	Address string `koanf:"address"`
}

func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// EmailConfig configures loan reminder emails sent through Resend.
type EmailConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	From         string `koanf:"from" validate:"omitempty,mailbox"`
	// Librarian receives the reminders.
	Librarian string `koanf:"librarian" validate:"omitempty,email"`
}

// RemindersEnabled reports whether loan reminders can be queued and delivered.
func (c *Config) RemindersEnabled() bool {
	return c.Redis.Enabled() && c.Email.ResendAPIKey != "" && c.Email.Librarian != ""
}

// Defaults returns the configuration used for any variable left unset.
func Defaults() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:         "3000",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
			RateLimit:    20,
			RateBurst:    40,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Name:            "local_library",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 300,
			MongoDatabase:   "local_library",
		},
		Email: EmailConfig{
			From: "Local Library <library@example.com>",
		},
	}
}

// envKey maps LOCALLIBRARY_SERVER__READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// newValidator accepts RFC 5322 mailboxes such as "Name <addr@host>" under
// the mailbox tag.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		_, err := mail.ParseAddress(fl.Field().String())
		return err == nil
	})
	return v
}

// LoadConfig reads, defaults and validates the configuration.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := Defaults()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := newValidator().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

const redacted = "******"

// Redacted returns a copy with credentials masked, safe to print.
func (c *Config) Redacted() *Config {
	out := *c
	mask := func(s *string) {
		if *s != "" {
			*s = redacted
		}
	}

	mask(&out.Database.Password)
	mask(&out.Database.MongoURI)
	mask(&out.Email.ResendAPIKey)

	if c.Observability != nil {
		obs := *c.Observability
		mask(&obs.NewRelic.LicenseKey)
		out.Observability = &obs
	}

	return &out
}
