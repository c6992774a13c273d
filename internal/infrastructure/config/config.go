// Package config loads the console settings from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Session store backends.
const (
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	HRAPI   HRAPIConfig
	Session SessionConfig
	Audit   AuditConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// HRAPIConfig points at the HR REST backend.
type HRAPIConfig struct {
	URL     string        `env:"HR_API_URL,     default=http://localhost:3005"`
	Timeout time.Duration `env:"HR_API_TIMEOUT, default=15s"`
}

// SessionConfig configures the browser session. LoginRateLimit is the number
// of POST /login per minute and client IP; 0 disables the limit.
type SessionConfig struct {
	Secret         string        `env:"SESSION_SECRET"`
	CookieName     string        `env:"SESSION_COOKIE,   default=rrhh_session"`
	ThemeCookie    string        `env:"THEME_COOKIE,     default=rrhh_theme"`
	TTL            time.Duration `env:"SESSION_TTL,      default=24h"`
	Store          string        `env:"SESSION_STORE,    default=redis"`
	Secure         bool          `env:"COOKIE_SECURE,    default=false"`
	PublicEntry    string        `env:"PUBLIC_ENTRY,     default=/"`
	LoginRateLimit int           `env:"LOGIN_RATE_LIMIT, default=10"`
}

type AuditConfig struct {
	// Workers of the session audit dispatcher; 0 disables the audit trail.
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=rrhh_console"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsDevelopment reports whether ENV selects the development profile.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// NeedsMongo reports whether any component talks to MongoDB.
func (c *Config) NeedsMongo() bool {
	return c.Session.Store == StoreMongo || c.Audit.Workers > 0
}

// Load reads an optional dotenv file and then the environment using
// go-envconfig. Variables already set in the environment win over the file.
// An empty envFile loads ".env" when it exists.
func Load(ctx context.Context, envFile string) (*Config, error) {
	if err := loadDotenv(envFile); err != nil {
		return nil, err
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotenv(envFile string) error {
	explicit := envFile != ""
	if !explicit {
		envFile = ".env"
	}
	err := godotenv.Load(envFile)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("config: load %s: %w", envFile, err)
}

// Validate checks values envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.HRAPI.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("HR_API_URL %q must be an absolute http(s) url", c.HRAPI.URL))
	}
	switch c.Session.Store {
	case StoreRedis, StoreMongo, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("SESSION_STORE %q must be one of redis, mongo, memory", c.Session.Store))
	}
	if c.Session.Secret == "" && !c.IsDevelopment() {
		errs = append(errs, errors.New("SESSION_SECRET is required outside development"))
	}
	if c.Session.Secret != "" && len(c.Session.Secret) < 32 {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 32 bytes"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if !strings.HasPrefix(c.Session.PublicEntry, "/") {
		errs = append(errs, fmt.Errorf("PUBLIC_ENTRY %q must be an absolute path", c.Session.PublicEntry))
	}
	if c.Session.LoginRateLimit < 0 {
		errs = append(errs, errors.New("LOGIN_RATE_LIMIT must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
