// Package localindex defines the external local-index contract (spec.md
// §4.6) plus an in-memory reference implementation used by the core's own
// tests, matching how the teacher's internal/registry/store interface is
// implemented by multiple interchangeable backends.
package localindex

import (
	"context"
	"sort"
	"sync"

	"github.com/driftlock/timevault/internal/vaultcore"
)

// Index is the full local-index contract the core depends on. All
// operations are treated as potentially asynchronous and independently
// failable; implementations surface failures as vaulterrors.StorageFailure.
// The index is purely local and is never the source of truth for an
// unlock — the ciphertext is.
type Index interface {
	Put(ctx context.Context, ref vaultcore.VaultRef) error
	Get(ctx context.Context, id string) (vaultcore.VaultRef, bool, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]vaultcore.VaultRef, error)
	IDs(ctx context.Context) (map[string]struct{}, error)
}

// Memory is an in-process Index, idempotent by id, with no durability.
type Memory struct {
	mu   sync.RWMutex
	refs map[string]vaultcore.VaultRef
}

// NewMemory returns an empty in-memory index.
func NewMemory() *Memory {
	return &Memory{refs: map[string]vaultcore.VaultRef{}}
}

func (m *Memory) Put(ctx context.Context, ref vaultcore.VaultRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refs[ref.ID] = ref
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (vaultcore.VaultRef, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ref, ok := m.refs[id]
	return ref, ok, nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.refs, id)
	return nil
}

func (m *Memory) List(ctx context.Context) ([]vaultcore.VaultRef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]vaultcore.VaultRef, 0, len(m.refs))
	for _, ref := range m.refs {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAtMs > out[j].CreatedAtMs
	})
	return out, nil
}

func (m *Memory) IDs(ctx context.Context) (map[string]struct{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]struct{}, len(m.refs))
	for id := range m.refs {
		out[id] = struct{}{}
	}
	return out, nil
}
