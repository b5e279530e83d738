package vef

import (
	"context"
	"time"

	"github.com/driftlock/timevault/internal/vaultcore"
)

// nowFunc is swappable in tests that need to pin "now".
var nowFunc = func() time.Time { return time.Now() }

func (v *VEF) toRef() vaultcore.VaultRef {
	return vaultcore.VaultRef{
		ID:               v.VaultID,
		UnlockTimeMs:     v.UnlockTimestamp,
		TlockCiphertext:  v.Timelock.Ciphertext,
		TlockRound:       v.Timelock.Round,
		InlineData:       v.EncryptedPayload,
		CreatedAtMs:      v.CreatedAt,
		Name:             v.Name,
		DestroyAfterRead: v.DestroyAfterRead,
	}
}

// Preview summarizes a VEF for a restore confirmation UI without persisting
// anything (spec.md §4.7.3).
func Preview(v *VEF, existingIDs map[string]struct{}) RestorePreview {
	_, exists := existingIDs[v.VaultID]
	status := StatusLocked
	if v.UnlockTimestamp <= nowFunc().UnixMilli() {
		status = StatusUnlockable
	}
	return RestorePreview{
		VaultID:          v.VaultID,
		Name:             v.Name,
		UnlockTimestamp:  v.UnlockTimestamp,
		CreatedAt:        v.CreatedAt,
		Status:           status,
		AlreadyExists:    exists,
		DestroyAfterRead: v.DestroyAfterRead,
	}
}

// Putter is the subset of the local-index contract restore needs.
type Putter interface {
	Put(ctx context.Context, ref vaultcore.VaultRef) error
}

// RestoreOne restores a single VEF into the local index, idempotent by id
// (spec.md §4.7.3): if v.VaultID is already in existingIDs, put is never
// called and the outcome is "skipped".
func RestoreOne(ctx context.Context, v *VEF, existingIDs map[string]struct{}, put Putter) RestoreOutcome {
	if _, ok := existingIDs[v.VaultID]; ok {
		return RestoreOutcome{ID: v.VaultID, Skipped: true}
	}
	if err := put.Put(ctx, v.toRef()); err != nil {
		return RestoreOutcome{ID: v.VaultID, Failed: true, Reason: err.Error()}
	}
	return RestoreOutcome{ID: v.VaultID, Restored: true}
}

// RestoreBundle restores every VEF in a bundle, skipping duplicates both
// against existingIDs and within the bundle itself: a newly restored id is
// added to existingIDs before the next entry is processed (spec.md §4.7.3).
func RestoreBundle(ctx context.Context, bundle *Bundle, existingIDs map[string]struct{}, put Putter) BundleOutcome {
	out := BundleOutcome{Total: len(bundle.Vaults)}
	for i := range bundle.Vaults {
		v := &bundle.Vaults[i]
		outcome := RestoreOne(ctx, v, existingIDs, put)
		switch {
		case outcome.Restored:
			out.Restored++
			existingIDs[v.VaultID] = struct{}{}
		case outcome.Skipped:
			out.Skipped++
		case outcome.Failed:
			out.Errors = append(out.Errors, outcome.Reason)
		}
	}
	return out
}
