package beacon

import (
	"context"
	"time"

	"github.com/driftlock/timevault/internal/chain"
	"github.com/driftlock/timevault/internal/metrics"
)

// metricsClient observes BeaconLatency around every call, the same
// Wrap(inner)/defer observe(...) shape as the teacher's
// internal/plugin/store/metrics.Wrap.
type metricsClient struct {
	inner Client
}

// WrapMetrics wraps inner so every ChainInfo/Signature call is timed into
// metrics.BeaconLatency. A no-op observer (metrics.BeaconLatency == nil,
// i.e. metrics.Init was never called) is handled by observe itself.
func WrapMetrics(inner Client) Client {
	return &metricsClient{inner: inner}
}

func observe(operation string, start time.Time, err error) {
	if metrics.BeaconLatency == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.BeaconLatency.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
}

func (m *metricsClient) ChainInfo(ctx context.Context) (chain.BeaconChain, error) {
	start := time.Now()
	info, err := m.inner.ChainInfo(ctx)
	observe("chain_info", start, err)
	return info, err
}

func (m *metricsClient) Signature(ctx context.Context, round uint64) ([]byte, error) {
	start := time.Now()
	sig, err := m.inner.Signature(ctx, round)
	observe("signature", start, err)
	return sig, err
}
