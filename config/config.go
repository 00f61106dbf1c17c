// Package config loads host configuration from .env files and the environment
// and turns it into a logger and lifecycle options.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sghaida/modbind/bind"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Env         string
	LogLevel    zapcore.Level
	LogFormat   string // json | console
	ReclaimHint bool
	Manifest    string
}

// Load reads the given .env files (".env" when none are given) and builds a
// Config. Process environment variables win over file values. Missing files
// are skipped; unparsable files and invalid values are errors.
func Load(envFiles ...string) (Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	fileVals := map[string]string{}
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", f, err)
		}
		for k, v := range vals {
			fileVals[k] = v
		}
	}
	src := source{file: fileVals}

	cfg := Config{
		Env:         src.get("MODBIND_ENV", "local"),
		LogFormat:   strings.ToLower(src.get("MODBIND_LOG_FORMAT", "console")),
		ReclaimHint: src.getBool("MODBIND_RECLAIM_HINT", true),
		Manifest:    src.get("MODBIND_MANIFEST", "scenes.yaml"),
	}

	level, err := zapcore.ParseLevel(src.get("MODBIND_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("config: MODBIND_LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return Config{}, fmt.Errorf("config: MODBIND_LOG_FORMAT must be json or console, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

// NewLogger builds a zap logger at the configured level and encoding.
func (c Config) NewLogger() (*zap.Logger, error) {
	var zc zap.Config
	if c.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(c.LogLevel)
	zc.Encoding = c.LogFormat
	return zc.Build()
}

// LifecycleOptions returns the bind options matching this configuration.
func (c Config) LifecycleOptions(log *zap.Logger) []bind.Option {
	return []bind.Option{
		bind.WithLogger(log),
		bind.WithReclaimHint(c.ReclaimHint),
	}
}

// source resolves a key from the environment, then the .env values.
type source struct {
	file map[string]string
}

func (s source) get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	if v := s.file[k]; v != "" {
		return v
	}
	return def
}

func (s source) getBool(k string, def bool) bool {
	v := s.get(k, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
