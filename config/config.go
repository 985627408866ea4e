package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config is built once at startup and never mutated afterwards.
type Config struct {
	Env      string `env:"ENV"       envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT"      envDefault:"3000"  validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"  validate:"oneof=debug info warn error"`

	// APIURL is the prefix every resource route is mounted under.
	APIURL      string `env:"API_URL"       envDefault:"/api/v1" validate:"required,startswith=/"`
	DatabaseURL string `env:"DATABASE_URL,required"              validate:"required"`
	MetricsPort string `env:"METRICS_PORT"  envDefault:"9090"`

	JWTSecret string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	JWTTTL    time.Duration `env:"JWT_TTL"             envDefault:"24h" validate:"min=1m"`

	UploadDir     string `env:"UPLOAD_DIR"      envDefault:"public/uploads"        validate:"required"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000" validate:"required,url"`
	MaxUploadMB   int64  `env:"MAX_UPLOAD_MB"   envDefault:"8"                     validate:"min=1,max=64"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s" validate:"min=1s"`

	// CORSOrigins lists allowed browser origins; "*" allows any.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*" validate:"min=1"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ExposeDiagnostics reports whether 500 responses may carry the raw error text.
func (c *Config) ExposeDiagnostics() bool {
	return c.Env == "local"
}

func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
