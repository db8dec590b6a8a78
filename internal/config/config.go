package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/DanielPopoola/beanstream-payments/internal/domain"
	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "BEANSTREAM_"

type Config struct {
	Merchant MerchantConfig `koanf:"merchant"`
	Gateway  GatewayConfig  `koanf:"gateway"`
	Retry    RetryConfig    `koanf:"retry"`
	Logger   LoggerConfig   `koanf:"logger"`
	Database DatabaseConfig `koanf:"database" validate:"-"`
}

type MerchantConfig struct {
	ID       int    `koanf:"id" validate:"required"`
	Passcode string `koanf:"passcode" validate:"required"`
	Platform string `koanf:"platform" validate:"required"`
	Version  string `koanf:"version" validate:"required"`
}

type GatewayConfig struct {
	// BaseURL overrides the production host template, e.g. for a sandbox.
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout" validate:"required"`
}

// RetryConfig controls RetryTransport. 5xx responses are retried for every
// method, so with MaxRetries above 1 a charge the gateway answered with a 5xx
// after processing could be sent twice.
type RetryConfig struct {
	BaseDelay  time.Duration `koanf:"base_delay"`
	MaxRetries int           `koanf:"max_retries" validate:"min=1"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

var defaults = map[string]any{
	"merchant.platform": "www",
	"merchant.version":  "v1",
	"gateway.timeout":   "30s",
	"retry.base_delay":  "500ms",
	"retry.max_retries": 1,
	"logger.level":      "info",
}

// Configuration is the merchant identity the payments client is built from.
func (m MerchantConfig) Configuration() domain.Configuration {
	return domain.Configuration{
		MerchantID:  m.ID,
		APIPasscode: m.Passcode,
		Platform:    m.Platform,
		Version:     m.Version,
	}
}

func (l LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// LoadConfig reads BEANSTREAM_* environment variables (a .env file is loaded
// first when present). Nested keys use a double underscore:
// BEANSTREAM_MERCHANT__ID -> merchant.id.
func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	if mainConfig.Database.Enabled {
		if err := validate.Struct(mainConfig.Database); err != nil {
			logger.Error("database config validation failed", "error", err)
			return nil, err
		}
	}

	return mainConfig, nil
}
