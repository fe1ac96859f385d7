package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Kafka   KafkaConfig
	Log     LogConfig
}

// ServerConfig holds gRPC listener settings.
type ServerConfig struct {
	Port     int
	APIToken string `mapstructure:"api_token"`
}

// StorageConfig selects the document store driver.
type StorageConfig struct {
	Driver   string // postgres, sqlite or memory
	Postgres PostgresConfig
	SQLite   SQLiteConfig
}

// PostgresConfig holds connection settings. DSN wins over the individual fields.
type PostgresConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// SQLiteConfig holds the local database file location.
type SQLiteConfig struct {
	Path string
}

// KafkaConfig holds broker addresses. No brokers means events are only logged.
type KafkaConfig struct {
	Brokers []string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from .env, an optional config file and env.
// Env var overrides use prefix ADVISORDESK_, e.g. ADVISORDESK_STORAGE_DRIVER.
func Load() (Config, error) {
	// .env is optional; real env vars take precedence over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	// default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.api_token", "dev-token")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.postgres.dsn", "")
	v.SetDefault("storage.postgres.host", "localhost")
	v.SetDefault("storage.postgres.port", 5432)
	v.SetDefault("storage.postgres.user", "postgres")
	v.SetDefault("storage.postgres.password", "postgres")
	v.SetDefault("storage.postgres.name", "advisordesk")
	v.SetDefault("storage.sqlite.path", "data/advisordesk.db")
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	if cfgPath := os.Getenv("ADVISORDESK_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	v.SetEnvPrefix("ADVISORDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	// Comma-separated env values arrive as a single element
	c.Kafka.Brokers = splitList(c.Kafka.Brokers)

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the settings the server cannot start without.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "postgres", "memory":
	case "sqlite":
		if c.Storage.SQLite.Path == "" {
			return errors.New("config: storage.sqlite.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("config: unknown storage.driver %q", c.Storage.Driver)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	return nil
}

// PostgresDSN returns the explicit DSN or one built from the individual fields.
func (c StorageConfig) PostgresDSN() string {
	if c.Postgres.DSN != "" {
		return c.Postgres.DSN
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Postgres.Host, c.Postgres.Port, c.Postgres.User, c.Postgres.Password, c.Postgres.Name)
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
