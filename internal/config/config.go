// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/relawan/portal/pkg/db"
	"github.com/relawan/portal/pkg/logger"
)

var (
	ErrLoad         = errors.New("config: failed to load environment")
	ErrWeakSecret   = errors.New("config: jwt secrets must be at least 32 bytes")
	ErrSharedSecret = errors.New("config: access and refresh secrets must differ")
)

const minSecretLen = 32

// Config is the complete server configuration.
type Config struct {
	Port string `env:"PORT" envDefault:"3000"`
	Env  string `env:"APP_ENV" envDefault:"development"`

	Database db.Config `envPrefix:"DATABASE_"`
	RedisURL string    `env:"REDIS_URL"`

	JWT      JWT
	Password Password

	Log    logger.Config
	Sentry logger.SentryConfig

	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// JWT configures the access and refresh token services.
type JWT struct {
	AccessSecret  string        `env:"JWT_ACCESS_SECRET,required"`
	RefreshSecret string        `env:"JWT_REFRESH_SECRET,required"`
	AccessTTL     time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL    time.Duration `env:"JWT_REFRESH_TTL" envDefault:"720h"`
	NotBefore     time.Duration `env:"JWT_NOT_BEFORE" envDefault:"3s"`
	Issuer        string        `env:"JWT_ISSUER" envDefault:"portal"`
}

// Password configures password hashing.
type Password struct {
	HashCost int `env:"PASSWORD_HASH_COST" envDefault:"12"`
}

// Load reads the process environment.
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom reads vars instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return load(env.Options{Environment: vars})
}

func load(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, errors.Join(ErrLoad, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if len(c.JWT.AccessSecret) < minSecretLen || len(c.JWT.RefreshSecret) < minSecretLen {
		return ErrWeakSecret
	}
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return ErrSharedSecret
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Development reports whether APP_ENV is "development".
func (c Config) Development() bool {
	return c.Env == "development"
}
