// Package common wires the CLI subcommands' shared setup: beacon client
// selection, local-index backend selection, and logging — the same
// "plugins register themselves, main() just selects by name" flow the
// teacher's serve.Command uses, shrunk to what a CLI run needs instead of a
// long-lived server.
package common

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/driftlock/timevault/internal/beacon"
	"github.com/driftlock/timevault/internal/chain"
	"github.com/driftlock/timevault/internal/config"
	"github.com/driftlock/timevault/internal/localindex"
	"github.com/driftlock/timevault/internal/localindex/sqlite"
	registrybeacon "github.com/driftlock/timevault/internal/registry/beacon"
	"github.com/driftlock/timevault/internal/retry"
)

// retryPolicyFromConfig builds C10's bounded-backoff policy from cfg's
// RetryMaxAttempts/RetryBaseDelay/RetryMaxDelay rather than hardcoding
// retry.DefaultPolicy(). SharedFlags exposes no flag or environment variable
// for these fields, so the CLI runs with config.DefaultConfig's values.
func retryPolicyFromConfig(cfg *config.Config) retry.Policy {
	return retry.Policy{
		MaxAttempts: cfg.RetryMaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
		MaxDelay:    cfg.RetryMaxDelay,
	}
}

// OpenBeaconClient selects and constructs the configured beacon backend,
// wrapping it with retry (C10's bounded backoff around transient
// NetworkUnavailable failures), latency metrics, the process-wide chain-info
// cache and, if RedisURL is set, a Redis-backed round-signature cache.
func OpenBeaconClient(cfg *config.Config) (beacon.Client, error) {
	backend := cfg.EffectiveBeaconBackend()
	client, err := registrybeacon.Select(backend, map[string]string{"base_url": cfg.BeaconURL})
	if err != nil {
		return nil, err
	}

	retrying := beacon.NewRetryingClient(client, retryPolicyFromConfig(cfg))
	observed := beacon.WrapMetrics(retrying)
	cached := beacon.NewCachingClient(observed)
	if cfg.RedisURL == "" {
		return cached, nil
	}

	rdb, err := beacon.LoadFromURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("common: connect redis: %w", err)
	}
	return beacon.NewRedisCachingClient(cached, rdb, "timevault:beacon:sig:"), nil
}

// OpenIndex selects and constructs the configured local-index backend,
// wrapped with failure-count metrics.
func OpenIndex(cfg *config.Config) (localindex.Index, error) {
	switch cfg.IndexDriver {
	case "memory":
		return localindex.WrapMetrics(localindex.NewMemory()), nil
	case "sqlite", "":
		store, err := sqlite.Open(cfg.IndexSQLitePath)
		if err != nil {
			return nil, err
		}
		return localindex.WrapMetrics(store), nil
	default:
		return nil, fmt.Errorf("common: unknown index driver %q", cfg.IndexDriver)
	}
}

// ChainInfo fetches the active BeaconChain description via client, passing
// ctx through unchanged so cancellation reaches the client.
func ChainInfo(ctx context.Context, client beacon.Client) (chain.BeaconChain, error) {
	return client.ChainInfo(ctx)
}

// SharedFlags returns the beacon/index/cache flags every subcommand that
// touches the core needs, writing into cfg's destinations.
func SharedFlags(cfg *config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "beacon-backend",
			Sources:     cli.EnvVars("TIMEVAULT_BEACON_BACKEND"),
			Destination: &cfg.BeaconBackend,
			Usage:       "Beacon backend (http|mock|fixture)",
		},
		&cli.StringFlag{
			Name:        "beacon-url",
			Sources:     cli.EnvVars("TIMEVAULT_BEACON_URL"),
			Value:       cfg.BeaconURL,
			Destination: &cfg.BeaconURL,
			Usage:       "drand HTTP API base URL",
		},
		&cli.StringFlag{
			Name:        "index-driver",
			Sources:     cli.EnvVars("TIMEVAULT_INDEX_DRIVER"),
			Value:       cfg.IndexDriver,
			Destination: &cfg.IndexDriver,
			Usage:       "Local index backend (memory|sqlite)",
		},
		&cli.StringFlag{
			Name:        "index-sqlite-path",
			Sources:     cli.EnvVars("TIMEVAULT_INDEX_SQLITE_PATH"),
			Value:       cfg.IndexSQLitePath,
			Destination: &cfg.IndexSQLitePath,
			Usage:       "Path to the sqlite index file",
		},
		&cli.StringFlag{
			Name:        "redis-url",
			Sources:     cli.EnvVars("TIMEVAULT_REDIS_URL"),
			Destination: &cfg.RedisURL,
			Usage:       "Optional Redis URL for caching beacon round signatures",
		},
	}
}
