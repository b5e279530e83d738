package beacon

import (
	"context"

	"github.com/driftlock/timevault/internal/chain"
	"github.com/driftlock/timevault/internal/timelock"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

// MockClient is an in-process beacon backed by a synthetic keypair: it
// signs any requested round immediately, as if every round had already been
// produced. Used for the happy-path scenario in spec.md §8.2.1 where the
// point of the exercise is the crypto plumbing, not waiting on a real
// network beacon.
type MockClient struct {
	keypair timelock.Keypair
	chain   chain.BeaconChain
}

// NewMockClient mints a fresh synthetic keypair and wraps it in a quicknet
// parameter set.
func NewMockClient() (*MockClient, error) {
	kp, err := timelock.GenerateKeypair()
	if err != nil {
		return nil, err
	}
	return &MockClient{keypair: kp, chain: chain.Quicknet(kp.Public)}, nil
}

func (m *MockClient) ChainInfo(ctx context.Context) (chain.BeaconChain, error) {
	return m.chain, nil
}

func (m *MockClient) Signature(ctx context.Context, round uint64) ([]byte, error) {
	if round < 1 {
		return nil, vaulterrors.New(vaulterrors.KindRoundNotYet, "round must be >= 1")
	}
	return m.keypair.Sign(round)
}
