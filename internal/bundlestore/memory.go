// Package bundlestore implements durable storage for exported VEF bundles
// (spec.md §4.7.3's export_bundle output), the bundle-export analogue of the
// teacher's internal/plugin/attach attachment stores: a small byte blob
// written under a key, fetched back by that key.
package bundlestore

import (
	"bytes"
	"context"
	"io"
	"sync"

	registrybundlestore "github.com/driftlock/timevault/internal/registry/bundlestore"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

func init() {
	registrybundlestore.Register(registrybundlestore.Plugin{
		Name: "memory",
		Loader: func(ctx context.Context) (registrybundlestore.Store, error) {
			return NewMemoryStore(), nil
		},
	})
}

// MemoryStore is an in-process Store with no durability, useful for tests
// and for a CLI run that only needs bundle-export's output to reach a local
// file via the caller rather than this package.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an empty in-memory bundle store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (m *MemoryStore) Put(ctx context.Context, key string, data io.Reader, size int64) error {
	buf, err := io.ReadAll(io.LimitReader(data, size+1))
	if err != nil {
		return vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	if int64(len(buf)) > size {
		return vaulterrors.New(vaulterrors.KindStorageFailure, "bundle exceeds declared size")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = buf
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	buf, ok := m.data[key]
	if !ok {
		return nil, vaulterrors.New(vaulterrors.KindStorageFailure, "bundle not found: "+key)
	}
	return io.NopCloser(bytes.NewReader(buf)), nil
}
