package vaultcore

import (
	"context"

	"github.com/driftlock/timevault/internal/aead"
	"github.com/driftlock/timevault/internal/beacon"
	"github.com/driftlock/timevault/internal/chain"
	"github.com/driftlock/timevault/internal/codec"
	"github.com/driftlock/timevault/internal/logging"
	"github.com/driftlock/timevault/internal/timelock"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

// Deleter is the subset of the local-index contract Unlock needs for the
// destroy_after_read path.
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

// Unlock recovers a vault's plaintext: it fetches the round signature,
// decapsulates the envelope's data key, decrypts the AEAD blob, and — only
// once decryption has already succeeded — performs a best-effort
// destroy-after-read delete (spec.md §7: deletion failure is logged, not
// re-raised).
func Unlock(ctx context.Context, c chain.BeaconChain, client beacon.Client, deleter Deleter, ref VaultRef) ([]byte, error) {
	log := logging.FromContext(ctx)
	log.Debug("unlocking vault", "id", ref.ID, "round", ref.TlockRound)

	env, err := timelock.DecodeEnvelope(ref.TlockCiphertext)
	if err != nil {
		return nil, err
	}

	sig, err := client.Signature(ctx, ref.TlockRound)
	if err != nil {
		return nil, err
	}

	dataKey, err := timelock.Decap(c, env, sig)
	if err != nil {
		log.Warn("unlock: decapsulation failed", "id", ref.ID, "err", err)
		return nil, err
	}
	defer func() {
		for i := range dataKey {
			dataKey[i] = 0
		}
	}()

	blob, err := codec.DecodeB64URL(ref.InlineData)
	if err != nil {
		return nil, vaulterrors.New(vaulterrors.KindMalformedEncoding, "inline_data is not valid base64")
	}

	plaintext, err := aead.Decrypt(aead.Blob(blob), aead.DataKey(dataKey))
	if err != nil {
		log.Warn("unlock: AEAD decryption failed", "id", ref.ID)
		return nil, err
	}

	if ref.DestroyAfterRead && deleter != nil {
		if delErr := deleter.Delete(ctx, ref.ID); delErr != nil {
			log.Warn("unlock: destroy_after_read delete failed", "id", ref.ID, "err", delErr)
		}
	}

	log.Debug("unlocked vault", "id", ref.ID)
	return plaintext, nil
}
