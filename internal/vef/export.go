package vef

import (
	"github.com/driftlock/timevault/internal/vaulterrors"
	"github.com/driftlock/timevault/internal/vaultcore"
)

// Export converts a VaultRef into its portable VEF document (spec.md
// §4.7.3). appVersion is the producer label stamped into app_version.
func Export(ref vaultcore.VaultRef, appVersion string) (*VEF, error) {
	if ref.ID == "" {
		return nil, vaulterrors.VEFInvalid("vault_id", "ref.ID is empty")
	}
	if ref.UnlockTimeMs == 0 {
		return nil, vaulterrors.VEFInvalid("unlock_timestamp", "ref.UnlockTimeMs is zero")
	}
	if ref.TlockCiphertext == "" {
		return nil, vaulterrors.VEFInvalid("timelock.ciphertext", "ref.TlockCiphertext is empty")
	}
	if ref.InlineData == "" {
		return nil, vaulterrors.VEFInvalid("encrypted_payload", "ref.InlineData is empty")
	}

	scheme, chainHash := builtinChain()
	id, err := vaultcore.ComputeVaultID(ref.InlineData, ref.UnlockTimeMs, scheme, chainHash, ref.TlockCiphertext)
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}

	doc := &VEF{
		VEFVersion:       CurrentVersion,
		VaultID:          id,
		EncryptedPayload: ref.InlineData,
		Crypto:           defaultCrypto(),
		Timelock: TimelockInfo{
			Scheme:     scheme,
			ChainHash:  chainHash,
			Round:      ref.TlockRound,
			Ciphertext: ref.TlockCiphertext,
		},
		UnlockTimestamp:  ref.UnlockTimeMs,
		CreatedAt:        ref.CreatedAtMs,
		AppVersion:       appVersion,
		Validation:       ValidationInfo{Scheme: scheme, ChainHash: chainHash},
		Name:             ref.Name,
		DestroyAfterRead: ref.DestroyAfterRead,
	}
	return doc, nil
}

// ExportBundle packages refs into a Bundle (spec.md §4.7.3). Per-ref export
// failures are collected in errs rather than aborting the whole bundle; the
// returned bundle contains only the successfully exported VEFs. A bundle
// with zero resulting VEFs is itself a failure.
func ExportBundle(refs []vaultcore.VaultRef, appVersion string, exportTimestampMs int64) (*Bundle, []error) {
	var vaults []VEF
	var errs []error
	for _, ref := range refs {
		doc, err := Export(ref, appVersion)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		vaults = append(vaults, *doc)
	}
	if len(vaults) == 0 {
		errs = append(errs, vaulterrors.New(vaulterrors.KindVEFInvalid, "export_bundle: no vault exported successfully"))
		return nil, errs
	}
	bundle := &Bundle{
		VEFVersion:      CurrentVersion,
		BundleType:      bundleType,
		ExportTimestamp: exportTimestampMs,
		AppVersion:      appVersion,
		Vaults:          vaults,
	}
	return bundle, errs
}
