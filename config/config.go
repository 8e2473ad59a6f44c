package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Auth          AuthConfig          `yaml:"auth"`
	Ladder        LadderConfig        `yaml:"ladder"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. An empty URL runs the event bus in memory.
type NATSConfig struct {
	URL        string        `yaml:"url"`
	NKeySeed   string        `yaml:"nkey_seed"`
	QueueGroup string        `yaml:"queue_group"`
	AckWait    time.Duration `yaml:"ack_wait"`
}

type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst"`
}

// AuthConfig holds the bearer-token settings of the identity provider.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	Issuer    string `yaml:"issuer"`
}

type LadderConfig struct {
	ChallengeExpiry     time.Duration `yaml:"challenge_expiry"`
	ExpirySweepCron     string        `yaml:"expiry_sweep_cron"`
	ConflictRetries     int           `yaml:"conflict_retries"`
	NotificationTimeout time.Duration `yaml:"notification_timeout"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level"`
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
}

const (
	defaultHTTPAddr        = ":8080"
	defaultExpirySweepCron = "*/5 * * * *"
	defaultConflictRetries = 1
	defaultRateLimitRPS    = 10
	defaultRateLimitBurst  = 20
)

// LoadConfig loads and validates the service configuration.
func LoadConfig(filename string) (*Config, error) {
	cfg, err := Load(filename)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the YAML file, falling back to the environment when the file does not
// exist, and applies defaults. A .env file is read first when present. Tools that
// only need part of the configuration use Load and check what they need.
func Load(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// environment only
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyEnv overrides file values with any environment variable that is set.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("NATS_NKEY_SEED"); v != "" {
		cfg.NATS.NKeySeed = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		cfg.Auth.Issuer = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("EXPIRY_SWEEP_CRON"); v != "" {
		cfg.Ladder.ExpirySweepCron = v
	}
	if v := os.Getenv("CHALLENGE_EXPIRY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CHALLENGE_EXPIRY value: %w", err)
		}
		cfg.Ladder.ChallengeExpiry = d
	}
	if v := os.Getenv("CONFLICT_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CONFLICT_RETRIES value: %w", err)
		}
		cfg.Ladder.ConflictRetries = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = defaultHTTPAddr
	}
	if c.HTTP.RateLimitRPS == 0 {
		c.HTTP.RateLimitRPS = defaultRateLimitRPS
	}
	if c.HTTP.RateLimitBurst == 0 {
		c.HTTP.RateLimitBurst = defaultRateLimitBurst
	}
	if c.Ladder.ExpirySweepCron == "" {
		c.Ladder.ExpirySweepCron = defaultExpirySweepCron
	}
	if c.Ladder.ConflictRetries == 0 {
		c.Ladder.ConflictRetries = defaultConflictRetries
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Postgres.DSN == "" {
		errs = append(errs, errors.New("postgres.dsn (DATABASE_URL) is required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret (JWT_SECRET) is required"))
	}
	if _, err := cron.ParseStandard(c.Ladder.ExpirySweepCron); err != nil {
		errs = append(errs, fmt.Errorf("ladder.expiry_sweep_cron %q: %w", c.Ladder.ExpirySweepCron, err))
	}
	if c.Ladder.ConflictRetries < 0 {
		errs = append(errs, errors.New("ladder.conflict_retries must not be negative"))
	}
	if c.Ladder.ChallengeExpiry < 0 {
		errs = append(errs, errors.New("ladder.challenge_expiry must not be negative"))
	}
	if _, err := parseLevel(c.Observability.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// IsProduction reports whether logs should be emitted as JSON.
func (c *Config) IsProduction() bool {
	return c.Observability.Environment == "production"
}

// LogLevel returns the configured slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Observability.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("observability.log_level %q: %w", s, err)
	}
	return level, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
