// Package config loads the panel configuration from a YAML file, falling
// back to defaults when the file is absent.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the panel.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Panel   PanelConfig   `yaml:"panel"`
	Storage StorageConfig `yaml:"storage"`
	Admin   AdminConfig   `yaml:"admin"`
}

// ServerConfig holds HTTP listener parameters.
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	IdleTimeoutSec  int    `yaml:"idle_timeout_sec"`
}

// ReadTimeout returns the read timeout as a duration.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSec) * time.Second
}

// WriteTimeout returns the write timeout as a duration.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSec) * time.Second
}

// IdleTimeout returns the idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSec) * time.Second
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PanelConfig holds the identity strings rendered on every page.
type PanelConfig struct {
	TabTitle   string `yaml:"tab_title"`
	GameName   string `yaml:"game_name"`
	ServerName string `yaml:"server_name"`
}

// StorageConfig selects a ban list backend. Only the section matching
// Type is read.
type StorageConfig struct {
	// Type is one of "memory", "sqlite", "redis", "postgres".
	Type     string         `yaml:"type"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig holds sqlite backend parameters.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// RedisConfig holds redis backend parameters.
type RedisConfig struct {
	URL          string `yaml:"url"`
	PoolSize     int    `yaml:"pool_size"`
	MinIdleConns int    `yaml:"min_idle_conns"`
}

// PostgresConfig holds postgres backend parameters.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

// AdminConfig holds the optional operator credential. Leaving
// password_hash empty runs the panel without a login.
type AdminConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
	// SessionDurationMin controls how long a login stays valid, in minutes
	SessionDurationMin int `yaml:"session_duration_min"`
	// LoginRatePerSecond and LoginBurst cap login attempts per client IP
	LoginRatePerSecond float64 `yaml:"login_rate_per_second"`
	LoginBurst         int     `yaml:"login_burst"`
}

// SessionDuration returns the session duration as a duration.
func (a AdminConfig) SessionDuration() time.Duration {
	return time.Duration(a.SessionDurationMin) * time.Minute
}

// Default returns the panel configuration with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeoutSec:  10,
			WriteTimeoutSec: 10,
			IdleTimeoutSec:  60,
		},
		Panel: PanelConfig{
			TabTitle:   "RCON Panel",
			GameName:   "My Game",
			ServerName: "My Server",
		},
		Storage: StorageConfig{
			Type: "memory",
			SQLite: SQLiteConfig{
				Path: "rconpanel.db",
			},
			Redis: RedisConfig{
				URL: "redis://localhost:6379",
			},
			Postgres: PostgresConfig{
				Host:    "127.0.0.1",
				Port:    5432,
				User:    "rconpanel",
				DBName:  "rconpanel",
				SSLMode: "disable",
			},
		},
		Admin: AdminConfig{
			Username:           "admin",
			SessionDurationMin: 12 * 60,
			LoginRatePerSecond: 1,
			LoginBurst:         5,
		},
	}
}

// Load loads panel config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Type {
	case "memory", "sqlite", "redis", "postgres":
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	return nil
}
