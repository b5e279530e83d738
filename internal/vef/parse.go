package vef

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/driftlock/timevault/internal/vaulterrors"
)

// ParseResult holds the outcome of Parse: exactly one of VEF or Bundle is
// non-nil.
type ParseResult struct {
	VEF    *VEF
	Bundle *Bundle
}

// Parse distinguishes a single VEF from a backup bundle by the presence of
// bundle_type=="backup" (spec.md §4.7.3) and validates whichever shape it
// finds. It never panics; every structural or value failure returns a
// *vaulterrors.Error with a field path.
func Parse(data []byte) (*ParseResult, error) {
	var probe struct {
		BundleType string `json:"bundle_type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, vaulterrors.VEFInvalid("", "not valid JSON: "+err.Error())
	}
	if probe.BundleType == bundleType {
		bundle, err := parseBundle(data)
		if err != nil {
			return nil, err
		}
		return &ParseResult{Bundle: bundle}, nil
	}
	doc, err := Validate(data)
	if err != nil {
		return nil, err
	}
	return &ParseResult{VEF: doc}, nil
}

// strictDecode unmarshals raw into dst, rejecting any field in raw that dst
// does not declare (spec.md §4.7.4's "tight-compatibility" rule, used only
// for the cryptographic nested objects).
func strictDecode(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// Validate performs the structural and value-level checks of spec.md
// §4.7.3's validate operation, reporting the first failure found with a
// field path. Unknown top-level fields are ignored; unknown fields nested
// inside crypto/timelock/validation are rejected.
func Validate(data []byte) (*VEF, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, vaulterrors.VEFInvalid("", "not valid JSON object: "+err.Error())
	}

	var version string
	if err := requireField(top, "vef_version", &version); err != nil {
		return nil, err
	}
	if len(version) >= 2 && version[:2] == "1." {
		return nil, vaulterrors.VEFInvalid("vef_version", "legacy vef_version 1.x is not supported")
	}
	if version != CurrentVersion {
		return nil, vaulterrors.VEFInvalid("vef_version", fmt.Sprintf("unsupported vef_version %q", version))
	}

	var vaultID string
	if err := requireField(top, "vault_id", &vaultID); err != nil {
		return nil, err
	}
	if len(vaultID) != 32 {
		return nil, vaulterrors.VEFInvalid("vault_id", "must be 32 hex characters")
	}

	var payload string
	if err := requireField(top, "encrypted_payload", &payload); err != nil {
		return nil, err
	}

	cryptoInfo, err := validateCrypto(top)
	if err != nil {
		return nil, err
	}

	tlock, err := validateTimelock(top)
	if err != nil {
		return nil, err
	}

	var unlockTs, createdAt int64
	if err := requireField(top, "unlock_timestamp", &unlockTs); err != nil {
		return nil, err
	}
	if err := requireField(top, "created_at", &createdAt); err != nil {
		return nil, err
	}

	var appVersion string
	if err := requireField(top, "app_version", &appVersion); err != nil {
		return nil, err
	}

	validation, err := validateValidation(top)
	if err != nil {
		return nil, err
	}
	builtinScheme, builtinChainHash := builtinChain()
	if validation.ChainHash != builtinChainHash {
		return nil, vaulterrors.VEFInvalid("validation.chain_hash", "chain_hash does not match the built-in chain")
	}
	if validation.Scheme != builtinScheme {
		return nil, vaulterrors.VEFInvalid("validation.scheme", "scheme does not match the built-in chain")
	}

	var name string
	if raw, ok := top["name"]; ok {
		if err := json.Unmarshal(raw, &name); err != nil {
			return nil, vaulterrors.VEFInvalid("name", "must be a string")
		}
	}
	var destroyAfterRead bool
	if raw, ok := top["destroy_after_read"]; ok {
		if err := json.Unmarshal(raw, &destroyAfterRead); err != nil {
			return nil, vaulterrors.VEFInvalid("destroy_after_read", "must be a boolean")
		}
	}

	return &VEF{
		VEFVersion:       version,
		VaultID:          vaultID,
		EncryptedPayload: payload,
		Crypto:           cryptoInfo,
		Timelock:         tlock,
		UnlockTimestamp:  unlockTs,
		CreatedAt:        createdAt,
		AppVersion:       appVersion,
		Validation:       validation,
		Name:             name,
		DestroyAfterRead: destroyAfterRead,
	}, nil
}

func requireField(top map[string]json.RawMessage, field string, dst any) error {
	raw, ok := top[field]
	if !ok {
		return vaulterrors.VEFInvalid(field, "missing required field")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return vaulterrors.VEFInvalid(field, "wrong type: "+err.Error())
	}
	return nil
}

func validateCrypto(top map[string]json.RawMessage) (CryptoInfo, error) {
	raw, ok := top["crypto"]
	if !ok {
		return CryptoInfo{}, vaulterrors.VEFInvalid("crypto", "missing required field")
	}
	var c CryptoInfo
	if err := strictDecode(raw, &c); err != nil {
		return CryptoInfo{}, vaulterrors.VEFInvalid("crypto", "unexpected field or type: "+err.Error())
	}
	want := defaultCrypto()
	if c != want {
		return CryptoInfo{}, vaulterrors.VEFInvalid("crypto", "unsupported crypto descriptor")
	}
	return c, nil
}

func validateTimelock(top map[string]json.RawMessage) (TimelockInfo, error) {
	raw, ok := top["timelock"]
	if !ok {
		return TimelockInfo{}, vaulterrors.VEFInvalid("timelock", "missing required field")
	}
	var tl TimelockInfo
	if err := strictDecode(raw, &tl); err != nil {
		return TimelockInfo{}, vaulterrors.VEFInvalid("timelock", "unexpected field or type: "+err.Error())
	}
	builtinScheme, builtinChainHash := builtinChain()
	if tl.ChainHash != builtinChainHash {
		return TimelockInfo{}, vaulterrors.VEFInvalid("timelock.chain_hash", "chain_hash does not match the built-in chain")
	}
	if tl.Scheme != builtinScheme {
		return TimelockInfo{}, vaulterrors.VEFInvalid("timelock.scheme", "scheme does not match the built-in chain")
	}
	if tl.Ciphertext == "" {
		return TimelockInfo{}, vaulterrors.VEFInvalid("timelock.ciphertext", "missing required field")
	}
	return tl, nil
}

func validateValidation(top map[string]json.RawMessage) (ValidationInfo, error) {
	raw, ok := top["validation"]
	if !ok {
		return ValidationInfo{}, vaulterrors.VEFInvalid("validation", "missing required field")
	}
	var v ValidationInfo
	if err := strictDecode(raw, &v); err != nil {
		return ValidationInfo{}, vaulterrors.VEFInvalid("validation", "unexpected field or type: "+err.Error())
	}
	return v, nil
}

func parseBundle(data []byte) (*Bundle, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, vaulterrors.VEFInvalid("", "not valid JSON object: "+err.Error())
	}

	var version string
	if err := requireField(top, "vef_version", &version); err != nil {
		return nil, err
	}
	if version != CurrentVersion {
		return nil, vaulterrors.VEFInvalid("vef_version", fmt.Sprintf("unsupported vef_version %q", version))
	}

	var exportTs int64
	if err := requireField(top, "export_timestamp", &exportTs); err != nil {
		return nil, err
	}
	var appVersion string
	if err := requireField(top, "app_version", &appVersion); err != nil {
		return nil, err
	}

	raw, ok := top["vaults"]
	if !ok {
		return nil, vaulterrors.VEFInvalid("vaults", "missing required field")
	}
	var rawVaults []json.RawMessage
	if err := json.Unmarshal(raw, &rawVaults); err != nil {
		return nil, vaulterrors.VEFInvalid("vaults", "must be an array")
	}

	vaults := make([]VEF, 0, len(rawVaults))
	for i, rv := range rawVaults {
		doc, err := Validate(rv)
		if err != nil {
			return nil, vaulterrors.VEFInvalid(fmt.Sprintf("vaults[%d]", i), err.Error())
		}
		vaults = append(vaults, *doc)
	}

	return &Bundle{
		VEFVersion:      version,
		BundleType:      bundleType,
		ExportTimestamp: exportTs,
		AppVersion:      appVersion,
		Vaults:          vaults,
	}, nil
}
