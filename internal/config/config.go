package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	GuardNone   = "none"
	GuardMemory = "memory"
	GuardRedis  = "redis"
)

type Config struct {
	HTTPAddr string     `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel slog.Level `ignored:"true"`
	RawLevel string     `envconfig:"LOG_LEVEL" default:"info"`

	AIBaseURL string        `envconfig:"AI_GATEWAY_BASE_URL" default:"https://ai.gateway.lovable.dev/v1"`
	AIModel   string        `envconfig:"AI_MODEL" default:"google/gemini-2.5-flash"`
	AITimeout time.Duration `envconfig:"AI_TIMEOUT" default:"0s"` // 0 keeps the transport default
	// Missing key is not a startup error; every generation request fails instead.
	AIAPIKey     string `envconfig:"AI_GATEWAY_API_KEY"`
	AIAPIKeyFile string `envconfig:"AI_GATEWAY_API_KEY_FILE"`

	PromptsFile string `envconfig:"PROMPTS_FILE"`

	GuardBackend string        `envconfig:"GUARD_BACKEND" default:"none"`
	RedisURL     string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	GuardTTL     time.Duration `envconfig:"GUARD_TTL" default:"2m"`
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}

	level, err := parseLogLevel(c.RawLevel)
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	if c.AIAPIKey == "" && c.AIAPIKeyFile != "" {
		key, err := readSecret(c.AIAPIKeyFile)
		if err != nil {
			return Config{}, err
		}
		c.AIAPIKey = key
	}

	if c.AITimeout < 0 {
		return Config{}, fmt.Errorf("invalid AI_TIMEOUT %s: must not be negative", c.AITimeout)
	}

	c.GuardBackend = strings.ToLower(strings.TrimSpace(c.GuardBackend))
	switch c.GuardBackend {
	case GuardNone, GuardMemory:
	case GuardRedis:
		if c.GuardTTL <= 0 {
			return Config{}, fmt.Errorf("invalid GUARD_TTL %s: must be positive", c.GuardTTL)
		}
	default:
		return Config{}, fmt.Errorf("invalid GUARD_BACKEND %q", c.GuardBackend)
	}

	return c, nil
}

// readSecret reads a docker-secrets style file.
func readSecret(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read secret file %s: %w", path, err)
	}
	secret := strings.TrimSpace(string(raw))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", path)
	}
	return secret, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
