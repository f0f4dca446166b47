package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Config is the catalog server configuration.
type Config struct {
	Addr            string
	LoadDelay       time.Duration
	SessionTTL      time.Duration
	ShutdownTimeout time.Duration
	LogMode         string
	LogFile         string
}

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		Addr:            ":3000",
		LoadDelay:       2 * time.Second,
		SessionTTL:      30 * time.Minute,
		ShutdownTimeout: 30 * time.Second,
		LogMode:         ModeDevelopment,
	}
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds the configuration from lookup, starting from Default.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if v, ok := lookup("CATALOG_ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup("CATALOG_LOG_MODE"); ok && v != "" {
		cfg.LogMode = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup("CATALOG_LOG_FILE"); ok {
		cfg.LogFile = strings.TrimSpace(v)
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"CATALOG_LOAD_DELAY", &cfg.LoadDelay},
		{"CATALOG_SESSION_TTL", &cfg.SessionTTL},
		{"CATALOG_SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		v, ok := lookup(d.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		parsed, err := parseDuration(v)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", d.key)
		}
		*d.dst = parsed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("CATALOG_ADDR is empty")
	}
	if c.LoadDelay < 0 {
		return errors.Errorf("CATALOG_LOAD_DELAY must not be negative, got %s", c.LoadDelay)
	}
	if c.SessionTTL <= 0 {
		return errors.Errorf("CATALOG_SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.Errorf("CATALOG_SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	switch c.LogMode {
	case ModeDevelopment, ModeProduction:
	default:
		return errors.Errorf("CATALOG_LOG_MODE must be %q or %q, got %q", ModeDevelopment, ModeProduction, c.LogMode)
	}
	return nil
}

// parseDuration accepts Go durations ("2s", "1m30s"). Bare numbers other
// than 0 are rejected: "30" could mean seconds or milliseconds.
func parseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if n, err := cast.ToFloat64E(raw); err == nil {
		if n == 0 {
			return 0, nil
		}
		return 0, errors.Errorf("duration %q has no unit", raw)
	}
	d, err := cast.ToDurationE(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid duration %q", raw)
	}
	return d, nil
}
