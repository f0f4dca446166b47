package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, 2*time.Second, cfg.LoadDelay)
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"CATALOG_ADDR":             ":8080",
		"CATALOG_LOAD_DELAY":       "500ms",
		"CATALOG_SESSION_TTL":      "1h",
		"CATALOG_SHUTDOWN_TIMEOUT": " 5s ",
		"CATALOG_LOG_MODE":         "Production",
		"CATALOG_LOG_FILE":         "/tmp/catalog.log",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 500*time.Millisecond, cfg.LoadDelay)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ModeProduction, cfg.LogMode)
	assert.Equal(t, "/tmp/catalog.log", cfg.LogFile)
}

func TestFromLookupZeroDelay(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"CATALOG_LOAD_DELAY": "0"}))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.LoadDelay)
}

func TestFromLookupErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "malformed duration",
			env:  map[string]string{"CATALOG_LOAD_DELAY": "soon"},
			want: "CATALOG_LOAD_DELAY",
		},
		{
			name: "negative delay",
			env:  map[string]string{"CATALOG_LOAD_DELAY": "-1s"},
			want: "must not be negative",
		},
		{
			name: "zero ttl",
			env:  map[string]string{"CATALOG_SESSION_TTL": "0s"},
			want: "CATALOG_SESSION_TTL must be positive",
		},
		{
			name: "unitless shutdown timeout",
			env:  map[string]string{"CATALOG_SHUTDOWN_TIMEOUT": "30"},
			want: "CATALOG_SHUTDOWN_TIMEOUT",
		},
		{
			name: "unitless fraction",
			env:  map[string]string{"CATALOG_LOAD_DELAY": "1.5"},
			want: "has no unit",
		},
		{
			name: "unknown log mode",
			env:  map[string]string{"CATALOG_LOG_MODE": "verbose"},
			want: "CATALOG_LOG_MODE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
