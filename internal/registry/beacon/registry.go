// Package beacon is a provider registry for beacon-client backends,
// generalized from the teacher's internal/registry/encrypt
// Plugin/Register/Select/Names pattern. Concrete backends (in
// internal/beacon) register themselves from an init() in their own package;
// this package cannot import internal/beacon itself, since internal/beacon's
// init() needs to call Register here — it depends on beacon.Client and
// beacon.HTTPClient/etc. satisfying Client structurally instead.
package beacon

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/driftlock/timevault/internal/chain"
)

// Client mirrors internal/beacon.Client's method set. Any BeaconClient
// implementation satisfies this interface without an explicit import.
type Client interface {
	ChainInfo(ctx context.Context) (chain.BeaconChain, error)
	Signature(ctx context.Context, round uint64) ([]byte, error)
}

// Loader constructs a beacon client from a backend-specific config map.
type Loader func(config map[string]string) (Client, error)

// Plugin names a registered beacon backend.
type Plugin struct {
	Name   string
	Loader Loader
}

var (
	mu      sync.Mutex
	plugins []Plugin
)

// Register adds a named backend. Panics on duplicate registration, since
// that can only happen from a programming error at init() time.
func Register(name string, loader Loader) {
	mu.Lock()
	defer mu.Unlock()
	for _, p := range plugins {
		if p.Name == name {
			panic(fmt.Sprintf("beacon: duplicate provider registration: %s", name))
		}
	}
	plugins = append(plugins, Plugin{Name: name, Loader: loader})
}

// Names returns the sorted list of registered backend names.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	names := make([]string, len(plugins))
	for i, p := range plugins {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}

// Select constructs the named backend's client.
func Select(name string, config map[string]string) (Client, error) {
	mu.Lock()
	var loader Loader
	for _, p := range plugins {
		if p.Name == name {
			loader = p.Loader
			break
		}
	}
	mu.Unlock()
	if loader == nil {
		return nil, fmt.Errorf("beacon: unknown provider %q (registered: %v)", name, Names())
	}
	return loader(config)
}
