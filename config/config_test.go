package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Port:               "3333",
		TaxIDHeader:        "cpf",
		ShutdownTimeout:    5 * time.Second,
		CORSAllowedOrigins: []string{"*"},
		MetricsEnabled:     true,
		LogLevel:           "info",
		LogFormat:          "json",
		Timezone:           "UTC",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty tax id header",
			mutate:      func(c *Config) { c.TaxIDHeader = "  " },
			wantErr:     true,
			errorString: "tax id header name cannot be empty",
		},
		{
			name:        "non-positive shutdown timeout",
			mutate:      func(c *Config) { c.ShutdownTimeout = 0 },
			wantErr:     true,
			errorString: "invalid shutdown timeout 0s: must be positive",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "unknown log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
		{
			name:        "unknown timezone",
			mutate:      func(c *Config) { c.Timezone = "Mars/Olympus_Mons" },
			wantErr:     true,
			errorString: "invalid timezone 'Mars/Olympus_Mons'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestConfig_ValidateReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.LogLevel = "loud"

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"PORT", "TAX_ID_HEADER", "SHUTDOWN_TIMEOUT", "CORS_ALLOWED_ORIGINS",
			"METRICS_ENABLED", "LOG_LEVEL", "LOG_FORMAT", "TIMEZONE"} {
			t.Setenv(key, "")
		}

		cfg := Load()

		assert.Equal(t, "3333", cfg.Port)
		assert.Equal(t, "cpf", cfg.TaxIDHeader)
		assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
		assert.True(t, cfg.MetricsEnabled)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "Local", cfg.Timezone)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("TAX_ID_HEADER", "X-Tax-Id")
		t.Setenv("SHUTDOWN_TIMEOUT", "10s")
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example,")
		t.Setenv("METRICS_ENABLED", "false")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOG_FORMAT", "console")
		t.Setenv("TIMEZONE", "America/Sao_Paulo")

		cfg := Load()

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, ":8080", cfg.Addr())
		assert.Equal(t, "X-Tax-Id", cfg.TaxIDHeader)
		assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
		assert.False(t, cfg.MetricsEnabled)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "console", cfg.LogFormat)
		assert.Equal(t, "America/Sao_Paulo", cfg.Location().String())
	})

	t.Run("unparsable values fall back to defaults", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")
		t.Setenv("METRICS_ENABLED", "maybe")

		cfg := Load()

		assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
		assert.True(t, cfg.MetricsEnabled)
	})
}
