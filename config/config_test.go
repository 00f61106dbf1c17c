package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sghaida/modbind/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// writeEnv writes an .env file into a temp dir and returns its path.
func writeEnv(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// clearEnv blanks every MODBIND_ variable for the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MODBIND_ENV", "MODBIND_LOG_LEVEL", "MODBIND_LOG_FORMAT",
		"MODBIND_RECLAIM_HINT", "MODBIND_MANIFEST",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, config.Config{
		Env:         "local",
		LogLevel:    zapcore.InfoLevel,
		LogFormat:   "console",
		ReclaimHint: true,
		Manifest:    "scenes.yaml",
	}, cfg)
}

func TestLoad_FileAndEnvPrecedence(t *testing.T) {
	clearEnv(t)
	p := writeEnv(t, "MODBIND_ENV=production\nMODBIND_LOG_LEVEL=debug\nMODBIND_RECLAIM_HINT=false\nMODBIND_MANIFEST=from-file.yaml\n")
	t.Setenv("MODBIND_MANIFEST", "from-env.yaml")

	cfg, err := config.Load(p)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
	assert.False(t, cfg.ReclaimHint)
	assert.Equal(t, "from-env.yaml", cfg.Manifest)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{name: "level", key: "MODBIND_LOG_LEVEL", val: "loud"},
		{name: "format", key: "MODBIND_LOG_FORMAT", val: "xml"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.val)

			_, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

// TestLoad_BadBoolFallsBack verifies an unparsable bool keeps the default.
func TestLoad_BadBoolFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODBIND_RECLAIM_HINT", "maybe")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.True(t, cfg.ReclaimHint)
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := config.Config{Env: "production", LogLevel: zapcore.WarnLevel, LogFormat: format}
		log, err := cfg.NewLogger()
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))
	}
}

func TestLifecycleOptions(t *testing.T) {
	cfg := config.Config{ReclaimHint: false}
	opts := cfg.LifecycleOptions(nil)
	assert.Len(t, opts, 2)
}
