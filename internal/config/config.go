package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port             int           `envconfig:"PORT" default:"3000"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	Version          string        `envconfig:"VERSION" default:"dev"`
	CodespaceName    string        `envconfig:"CODESPACE_NAME" default:""`
	APIBaseURL       string        `envconfig:"API_BASE_URL" default:""`
	BackendTimeout   time.Duration `envconfig:"BACKEND_TIMEOUT" default:"0s"`
	ViewTTL          time.Duration `envconfig:"VIEW_TTL" default:"30m"`
	ViewReapInterval time.Duration `envconfig:"VIEW_REAP_INTERVAL" default:"1m"`
	CSRFKey          string        `envconfig:"CSRF_KEY" default:""`
	CSRFSecure       bool          `envconfig:"CSRF_SECURE" default:"false"`
}

// ErrCSRFKeyLength is returned when CSRF_KEY is set but is not 32 bytes long.
var ErrCSRFKeyLength = errors.New("CSRF_KEY must be 32 bytes")

// ErrNonPositiveDuration is returned when VIEW_TTL or VIEW_REAP_INTERVAL is not above zero.
var ErrNonPositiveDuration = errors.New("duration must be positive")

// Load reads an optional .env file, then environment variables into a Config struct.
// Variables already present in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.CSRFKey != "" && len(cfg.CSRFKey) != 32 {
		return nil, ErrCSRFKeyLength
	}
	if cfg.ViewTTL <= 0 {
		return nil, fmt.Errorf("VIEW_TTL: %w", ErrNonPositiveDuration)
	}
	if cfg.ViewReapInterval <= 0 {
		return nil, fmt.Errorf("VIEW_REAP_INTERVAL: %w", ErrNonPositiveDuration)
	}
	return &cfg, nil
}

// CSRFEnabled reports whether form posts are CSRF protected.
func (c *Config) CSRFEnabled() bool {
	return c.CSRFKey != ""
}
