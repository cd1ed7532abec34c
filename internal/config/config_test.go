package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"image-analyser/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvConfigPath, EnvLogLevel, EnvDebug, EnvDebounceMillis, EnvThumbnailWidth} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, zerolog.InfoLevel, c.Level())
	assert.Equal(t, models.FilterNone, c.Filter())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigPath, writeConfig(t, `
log_level: warn
debounce_ms: 50
thumbnail_width: 200
initial_filter: hilo
show_profile: true
`))
	t.Setenv(EnvDebounceMillis, "75")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, 75, c.DebounceMillis)
	assert.Equal(t, 200, c.ThumbnailWidth)
	assert.True(t, c.ShowProfile)
	assert.Equal(t, models.FilterHiLo, c.Filter())
}

func TestDebugFlag(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDebug, "1")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, c.Level())

	t.Setenv(EnvLogLevel, "error")
	c, err = Load()
	require.NoError(t, err)
	assert.Equal(t, zerolog.ErrorLevel, c.Level())
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]struct {
		env       map[string]string
		yaml      string
		parameter string
	}{
		"bad level":         {env: map[string]string{EnvLogLevel: "loud"}, parameter: "log_level"},
		"non-numeric":       {env: map[string]string{EnvDebounceMillis: "soon"}, parameter: EnvDebounceMillis},
		"negative debounce": {yaml: "debounce_ms: -1", parameter: "debounce_ms"},
		"negative width":    {env: map[string]string{EnvThumbnailWidth: "-5"}, parameter: "thumbnail_width"},
		"unknown filter":    {yaml: "initial_filter: sharpen", parameter: "filter"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			if tc.yaml != "" {
				t.Setenv(EnvConfigPath, writeConfig(t, tc.yaml))
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			var ve *models.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tc.parameter, ve.Parameter)
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	assert.Error(t, err)

	t.Setenv(EnvConfigPath, writeConfig(t, "log_level: [unclosed"))
	_, err = Load()
	assert.Error(t, err)
}
