package localindex

import (
	"context"

	"github.com/driftlock/timevault/internal/metrics"
	"github.com/driftlock/timevault/internal/vaultcore"
)

// metricsIndex increments IndexErrors on failure, the same
// Wrap(inner)/observe-on-call shape as the teacher's
// internal/plugin/store/metrics.Wrap — except the local index has no
// latency budget worth tracking, only failure counts.
type metricsIndex struct {
	inner Index
}

// WrapMetrics wraps inner so every failed operation increments
// metrics.IndexErrors labeled by operation name.
func WrapMetrics(inner Index) Index {
	return &metricsIndex{inner: inner}
}

func observeErr(operation string, err error) {
	if err == nil || metrics.IndexErrors == nil {
		return
	}
	metrics.IndexErrors.WithLabelValues(operation).Inc()
}

func (m *metricsIndex) Put(ctx context.Context, ref vaultcore.VaultRef) error {
	err := m.inner.Put(ctx, ref)
	observeErr("put", err)
	return err
}

func (m *metricsIndex) Get(ctx context.Context, id string) (vaultcore.VaultRef, bool, error) {
	ref, ok, err := m.inner.Get(ctx, id)
	observeErr("get", err)
	return ref, ok, err
}

func (m *metricsIndex) Delete(ctx context.Context, id string) error {
	err := m.inner.Delete(ctx, id)
	observeErr("delete", err)
	return err
}

func (m *metricsIndex) List(ctx context.Context) ([]vaultcore.VaultRef, error) {
	refs, err := m.inner.List(ctx)
	observeErr("list", err)
	return refs, err
}

func (m *metricsIndex) IDs(ctx context.Context) (map[string]struct{}, error) {
	ids, err := m.inner.IDs(ctx)
	observeErr("ids", err)
	return ids, err
}
