// Package bundlestore is the provider-registry shell for durable VEF bundle
// storage, mirroring the teacher's internal/registry/attach shell. A local
// Store interface (rather than importing internal/bundlestore) keeps this
// package free of an import cycle with its own backends.
package bundlestore

import (
	"context"
	"fmt"
	"io"
)

// Store is the durable sink a bundle export may be written to.
type Store interface {
	Put(ctx context.Context, key string, data io.Reader, size int64) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// Loader constructs a Store from ambient configuration.
type Loader func(ctx context.Context) (Store, error)

// Plugin names one registered bundle-store backend.
type Plugin struct {
	Name   string
	Loader Loader
}

var plugins []Plugin

// Register adds a bundle-store backend. Panics on duplicate names, since
// duplicate registration is a programming error caught at init time.
func Register(p Plugin) {
	for _, existing := range plugins {
		if existing.Name == p.Name {
			panic(fmt.Sprintf("bundlestore: duplicate backend %q", p.Name))
		}
	}
	plugins = append(plugins, p)
}

// Names returns all registered backend names.
func Names() []string {
	names := make([]string, len(plugins))
	for i, p := range plugins {
		names[i] = p.Name
	}
	return names
}

// Select returns the loader for the named backend.
func Select(name string) (Loader, error) {
	for _, p := range plugins {
		if p.Name == name {
			return p.Loader, nil
		}
	}
	return nil, fmt.Errorf("bundlestore: unknown backend %q; valid: %v", name, Names())
}
