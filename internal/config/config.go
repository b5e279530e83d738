// Package config holds ambient configuration for the timevault CLI,
// following the teacher's context-carried Config + WithContext/FromContext
// shape (internal/config in chirino-memory-service), pared down to the
// concerns this domain actually has: no HTTP listeners, since the timevault
// surface is a CLI, not a server.
package config

import (
	"context"
	"os"
	"strings"
	"time"
)

type contextKey struct{}

// WithContext returns a new context carrying the given Config.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext retrieves the Config from the context, or nil if absent.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(contextKey{}).(*Config)
	return cfg
}

const (
	ModeProd    = "prod"
	ModeTesting = "testing"
)

// Config holds all configuration for the timevault CLI.
type Config struct {
	// Mode controls which beacon backend defaults are sensible. In
	// "testing" mode the default beacon backend is "mock" rather than
	// "http", so commands run offline without a drand endpoint.
	Mode string

	// Beacon client (internal/registry/beacon backend selection).
	BeaconBackend string // "http", "mock", or "fixture"
	BeaconURL     string

	// Beacon round-signature cache. Empty disables caching.
	RedisURL string

	// Retry policy (C10).
	RetryMaxAttempts int
	RetryBaseDelay   time.Duration
	RetryMaxDelay    time.Duration

	// Local index (C6) backend.
	IndexDriver     string // "memory" or "sqlite"
	IndexSQLitePath string

	// Bundle export durable sink.
	BundleStoreType    string // "memory" or "s3"
	S3Bucket           string
	S3Prefix           string
	S3ExternalEndpoint string
	S3UsePathStyle     bool

	// AppVersion is stamped into every VEF's app_version field.
	AppVersion string

	// LogLevel names a charmbracelet/log level: "debug", "info", "warn", or
	// "error". No command reads it.
	LogLevel string

	// TempDir overrides the OS default temp directory returned by
	// ResolvedTempDir. No command currently calls ResolvedTempDir.
	TempDir string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Mode:             ModeProd,
		BeaconBackend:    "http",
		BeaconURL:        "https://api.drand.sh",
		RetryMaxAttempts: 3,
		RetryBaseDelay:   time.Second,
		RetryMaxDelay:    10 * time.Second,
		IndexDriver:      "sqlite",
		IndexSQLitePath:  "timevault.db",
		BundleStoreType:  "memory",
		AppVersion:       "dev",
		LogLevel:         "info",
	}
}

// ResolvedTempDir returns the configured temp directory or the platform
// default.
func (c *Config) ResolvedTempDir() string {
	if c == nil {
		return os.TempDir()
	}
	if dir := strings.TrimSpace(c.TempDir); dir != "" {
		return dir
	}
	return os.TempDir()
}

// EffectiveBeaconBackend applies the Mode-dependent default: explicit
// BeaconBackend always wins, otherwise testing mode prefers the in-process
// mock beacon.
func (c *Config) EffectiveBeaconBackend() string {
	if c.BeaconBackend != "" {
		return c.BeaconBackend
	}
	if c.Mode == ModeTesting {
		return "mock"
	}
	return "http"
}
