package vaultcore

import (
	"context"
	"time"

	"github.com/driftlock/timevault/internal/aead"
	"github.com/driftlock/timevault/internal/beacon"
	"github.com/driftlock/timevault/internal/chain"
	"github.com/driftlock/timevault/internal/codec"
	"github.com/driftlock/timevault/internal/logging"
	"github.com/driftlock/timevault/internal/timelock"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

// Index is the subset of the local-index contract (C6) ArmDraft needs to
// persist a freshly armed vault.
type Index interface {
	Put(ctx context.Context, ref VaultRef) error
}

// nowFunc is swappable in tests that need to pin "now".
var nowFunc = func() time.Time { return time.Now() }

// CreateDraft validates unlockTimeMs is strictly in the future (by at least
// one beacon period) and performs no network I/O and no persistence
// (spec.md §4.5 Phase 1 / invariant P10).
func CreateDraft(c chain.BeaconChain, plaintext []byte, unlockTimeMs int64, destroyAfterRead bool, name string) (*VaultDraft, error) {
	nowMs := nowFunc().UnixMilli()
	minFuture := nowMs + int64(c.PeriodSeconds)*1000
	if unlockTimeMs < minFuture {
		return nil, vaulterrors.New(vaulterrors.KindUnlockInPast,
			"unlock_time_ms must be at least one beacon period in the future")
	}

	key, err := aead.GenerateKey()
	if err != nil {
		return nil, err
	}
	blob, err := aead.Encrypt(plaintext, key)
	if err != nil {
		key.Zero()
		return nil, err
	}
	inline := codec.EncodeB64URL(blob)

	return &VaultDraft{
		RawKey:           key,
		AEADBlob:         blob,
		InlineData:       inline,
		UnlockTimeMs:     unlockTimeMs,
		DestroyAfterRead: destroyAfterRead,
		Name:             name,
	}, nil
}

// ArmDraft is the two-phase commit's commit point (spec.md §4.5 Phase 2): it
// computes the target round, encapsulates the draft's data key, derives the
// content-addressed id, and persists the resulting VaultRef. The caller must
// call draft.WipeDraft() whether ArmDraft succeeds or fails.
func ArmDraft(ctx context.Context, client beacon.Client, index Index, draft *VaultDraft) (*VaultRef, error) {
	if draft.consumed {
		return nil, vaulterrors.New(vaulterrors.KindStorageFailure, "draft already consumed")
	}

	log := logging.FromContext(ctx)
	log.Debug("arming draft", "unlock_time_ms", draft.UnlockTimeMs)

	c, err := client.ChainInfo(ctx)
	if err != nil {
		log.Warn("arm_draft: chain_info failed", "err", err)
		return nil, err
	}

	round := c.RoundForTime(draft.UnlockTimeMs)
	env, err := timelock.Encap(c, draft.RawKey, round)
	if err != nil {
		log.Warn("arm_draft: encapsulation failed", "err", err)
		return nil, err
	}
	armored := timelock.EncodeEnvelope(env)

	id, err := ComputeVaultID(draft.InlineData, draft.UnlockTimeMs, c.Scheme, c.ChainHash, armored)
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}

	ref := VaultRef{
		ID:               id,
		UnlockTimeMs:     draft.UnlockTimeMs,
		TlockCiphertext:  armored,
		TlockRound:       round,
		InlineData:       draft.InlineData,
		CreatedAtMs:      nowFunc().UnixMilli(),
		Name:             draft.Name,
		DestroyAfterRead: draft.DestroyAfterRead,
	}

	if err := index.Put(ctx, ref); err != nil {
		log.Warn("arm_draft: persist failed", "err", err, "id", id)
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}

	draft.consumed = true
	log.Debug("armed draft", "id", id, "round", round)
	return &ref, nil
}
