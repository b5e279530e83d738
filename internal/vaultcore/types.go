// Package vaultcore implements spec.md's C5: the two-phase commit model for
// creating a vault (draft then arm) plus the VaultRef record it produces.
// Grounded structurally on the teacher's dataencryption.Service, which also
// sequences "encrypt, then wrap" before anything touches storage, but
// without the teacher's multi-provider routing — there is exactly one
// AEAD/timelock recipe here.
package vaultcore

import "github.com/driftlock/timevault/internal/aead"

// VaultRef is the durable record produced by arming a draft (spec.md §3.5).
type VaultRef struct {
	ID                string
	UnlockTimeMs      int64
	TlockCiphertext   string
	TlockRound        uint64
	InlineData        string
	CreatedAtMs       int64
	Name              string
	DestroyAfterRead  bool
}

// VaultDraft holds sensitive material between create_draft and arm_draft
// (spec.md §3.6). After WipeDraft or a successful ArmDraft, the draft is
// unusable: a further ArmDraft fails. Only WipeDraft overwrites RawKey and
// AEADBlob with zeros.
type VaultDraft struct {
	RawKey           aead.DataKey
	AEADBlob         aead.Blob
	InlineData       string
	UnlockTimeMs     int64
	DestroyAfterRead bool
	Name             string

	consumed bool
}

// WipeDraft overwrites RawKey and AEADBlob with zeros. InlineData is
// considered non-sensitive (it is public by construction) and is left
// intact. Safe to call more than once.
func (d *VaultDraft) WipeDraft() {
	d.RawKey.Zero()
	d.AEADBlob.Zero()
	d.consumed = true
}
