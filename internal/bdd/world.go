// Package bdd drives features/*.feature against this module's in-process
// packages directly, the way the teacher's internal/bdd drives its feature
// files against a running HTTP server — except there is no server here, so
// steps call vaultcore/vef/sharecodec the same way a CLI command's Action
// does, with a FixtureClient standing in for a real drand relay.
package bdd

import (
	"fmt"

	"github.com/driftlock/timevault/internal/beacon"
	"github.com/driftlock/timevault/internal/chain"
	"github.com/driftlock/timevault/internal/localindex"
	"github.com/driftlock/timevault/internal/timelock"
	"github.com/driftlock/timevault/internal/vaulterrors"
	"github.com/driftlock/timevault/internal/vaultcore"
	"github.com/driftlock/timevault/internal/vef"
)

// world holds the state of a single scenario. Scenarios run sequentially
// (see bdd_test.go's Concurrency setting), so no locking is needed.
type world struct {
	chain  chain.BeaconChain
	kp     timelock.Keypair
	client *beacon.FixtureClient
	index  *localindex.Memory

	ref  vaultcore.VaultRef
	refs []vaultcore.VaultRef

	plaintext []byte
	stepErr   error

	exported     *vef.VEF
	corruptedDoc []byte
	bundle       *vef.Bundle
	existing     map[string]struct{}
	restoreOut   vef.RestoreOutcome
	bundleOut    vef.BundleOutcome

	fragment   string
	decodedRef vaultcore.VaultRef
}

func (w *world) resetChain() error {
	kp, err := timelock.GenerateKeypair()
	if err != nil {
		return err
	}
	w.kp = kp
	w.chain = chain.Quicknet(kp.Public)
	w.client = beacon.NewFixtureClient(w.chain)
	w.index = localindex.NewMemory()
	w.refs = nil
	w.existing = map[string]struct{}{}
	return nil
}

// expectKind asserts err is a *vaulterrors.Error of the given kind.
func expectKind(err error, want string) error {
	if err == nil {
		return fmt.Errorf("expected a %s error, got none", want)
	}
	kind, ok := vaulterrors.KindOf(err)
	if !ok {
		return fmt.Errorf("expected a %s error, got non-tagged error: %w", want, err)
	}
	if string(kind) != want {
		return fmt.Errorf("expected a %s error, got %s: %w", want, kind, err)
	}
	return nil
}
