package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env       string          `mapstructure:"app_env"`
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Log       LogConfig       `mapstructure:",squash"`
	RateLimit RateLimitConfig `mapstructure:",squash"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"server_read_timeout"`
	WriteTimeout time.Duration `mapstructure:"server_write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"server_idle_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"db_host"`
	Port            string        `mapstructure:"db_port"`
	User            string        `mapstructure:"db_user"`
	Password        string        `mapstructure:"db_password"`
	Name            string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"db_sslmode"`
	MaxOpenConns    int           `mapstructure:"db_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"db_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`
	ConnectRetries  int           `mapstructure:"db_connect_retries"`
	AutoMigrate     bool          `mapstructure:"db_auto_migrate"`
}

// DSN renders the key/value connection string understood by pgx.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type RedisConfig struct {
	// Addr empty disables Idempotency-Key handling.
	Addr string `mapstructure:"redis_addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"log_level"`
	Format string `mapstructure:"log_format"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rate_limit_rps"`
	Burst int     `mapstructure:"rate_limit_burst"`
}

var defaults = map[string]any{
	"app_env":              "development",
	"port":                 "5000",
	"server_read_timeout":  5 * time.Second,
	"server_write_timeout": 10 * time.Second,
	"server_idle_timeout":  60 * time.Second,
	"db_host":              "localhost",
	"db_port":              "5432",
	"db_user":              "postgres",
	"db_password":          "",
	"db_name":              "employee_management",
	"db_sslmode":           "disable",
	"db_max_open_conns":    10,
	"db_max_idle_conns":    5,
	"db_conn_max_lifetime": time.Hour,
	"db_connect_retries":   5,
	"db_auto_migrate":      true,
	"redis_addr":           "",
	"log_level":            "info",
	"log_format":           "json",
	"rate_limit_rps":       20.0,
	"rate_limit_burst":     40,
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(viper.New())
}

// LoadFrom fills defaults into v, binds every key to its upper-cased
// environment variable and unmarshals the result.
func LoadFrom(v *viper.Viper) (*Config, error) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, val := range defaults {
		v.SetDefault(key, val)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port == "" {
		errs = append(errs, "PORT is required")
	}
	if c.Database.Host == "" {
		errs = append(errs, "DB_HOST is required")
	}
	if c.Database.Name == "" {
		errs = append(errs, "DB_NAME is required")
	}
	if c.Database.MaxOpenConns < 1 {
		errs = append(errs, "DB_MAX_OPEN_CONNS must be at least 1")
	}
	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, "DB_MAX_IDLE_CONNS must be between 0 and DB_MAX_OPEN_CONNS")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL %q must be one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT %q must be json or console", c.Log.Format))
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, "RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}

	if len(errs) > 0 {
		return errors.New("invalid config: " + strings.Join(errs, "; "))
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
