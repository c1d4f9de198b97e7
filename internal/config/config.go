// Package config loads server configuration from a YAML file, a .env file
// and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port      int    `yaml:"port"`
	ClientURL string `yaml:"client_url"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite or postgres
	Path   string `yaml:"path"`
	URL    string `yaml:"url"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type BillingConfig struct {
	// WebhookSecret guards AccountService.ApplySubscription. Empty disables it.
	WebhookSecret string `yaml:"webhook_secret"`
}

type StatsConfig struct {
	ServerSide bool `yaml:"server_side"`
}

type RankingConfig struct {
	FanoutLimit int    `yaml:"fanout_limit"`
	Timeout     string `yaml:"timeout"`
}

type InviteConfig struct {
	RatePerMinute int `yaml:"rate_per_minute"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Billing  BillingConfig  `yaml:"billing"`
	Stats    StatsConfig    `yaml:"stats"`
	Ranking  RankingConfig  `yaml:"ranking"`
	Invite   InviteConfig   `yaml:"invite"`
	Log      LogConfig      `yaml:"log"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      8080,
			ClientURL: "http://localhost:5173",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "./data/cpnboard.db",
		},
		Ranking: RankingConfig{
			FanoutLimit: 8,
			Timeout:     "10s",
		},
		Invite: InviteConfig{
			RatePerMinute: 30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration. path may be empty to skip the YAML file.
// A missing .env file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func (c *Config) applyEnv() error {
	var err error

	if c.Server.Port, err = getEnvInt("PORT", c.Server.Port); err != nil {
		return err
	}
	c.Server.ClientURL = getEnv("CLIENT_URL", c.Server.ClientURL)

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Database.URL = getEnv("DATABASE_URL", c.Database.URL)

	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Billing.WebhookSecret = getEnv("BILLING_WEBHOOK_SECRET", c.Billing.WebhookSecret)

	if c.Stats.ServerSide, err = getEnvBool("STATS_SERVER_SIDE", c.Stats.ServerSide); err != nil {
		return err
	}
	if c.Ranking.FanoutLimit, err = getEnvInt("RANKING_FANOUT_LIMIT", c.Ranking.FanoutLimit); err != nil {
		return err
	}
	c.Ranking.Timeout = getEnv("RANKING_TIMEOUT", c.Ranking.Timeout)
	if c.Invite.RatePerMinute, err = getEnvInt("INVITE_RATE_PER_MINUTE", c.Invite.RatePerMinute); err != nil {
		return err
	}

	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.ClientURL == "" {
		errs = append(errs, errors.New("server.client_url is required"))
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database.path is required for sqlite"))
		}
	case "postgres":
		if c.Database.URL == "" {
			errs = append(errs, errors.New("database.url is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database.driver %q", c.Database.Driver))
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if c.Ranking.FanoutLimit < 1 {
		errs = append(errs, errors.New("ranking.fanout_limit must be at least 1"))
	}
	if d, err := time.ParseDuration(c.Ranking.Timeout); err != nil || d <= 0 {
		errs = append(errs, fmt.Errorf("ranking.timeout %q is not a positive duration", c.Ranking.Timeout))
	}
	if c.Invite.RatePerMinute < 0 {
		errs = append(errs, errors.New("invite.rate_per_minute cannot be negative"))
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}

	return errors.Join(errs...)
}

// RankingTimeout returns ranking.timeout as a duration. Call after Validate.
func (c *Config) RankingTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Ranking.Timeout)
	return d
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// JoinURL returns the frontend join page for an invite token.
func (c *Config) JoinURL(token string) string {
	return strings.TrimRight(c.Server.ClientURL, "/") + "/join/" + token
}
