// Package vef implements the Vault Export Format codec (spec.md §4.7/6.1):
// the portable JSON document a vault can be exported to and restored from,
// plus its backup-bundle wrapper. Grounded on the teacher's
// internal/dataencryption document-shape marshaling (export/import of a
// single encrypted record to a stable wire schema) generalized to vaults.
package vef

import (
	"github.com/driftlock/timevault/internal/chain"
)

const (
	// CurrentVersion is the only vef_version this codec emits or accepts.
	CurrentVersion = "2.0.0"

	cryptoAlgorithm = "AES-GCM"
	cryptoKeyLength = 256
	cryptoIVLength  = 12

	bundleType = "backup"
)

// CryptoInfo is the VEF's crypto descriptor (spec.md §4.7.2). It is
// always the same literal triple; its only purpose is forward-looking
// self-description and a place to reject unknown shapes.
type CryptoInfo struct {
	Algorithm string `json:"algorithm"`
	KeyLength int    `json:"key_length"`
	IVLength  int    `json:"iv_length"`
}

// TimelockInfo is the VEF's timelock descriptor.
type TimelockInfo struct {
	Scheme     string `json:"scheme"`
	ChainHash  string `json:"chain_hash"`
	Round      uint64 `json:"round"`
	Ciphertext string `json:"ciphertext"`
}

// ValidationInfo is a snapshot of the chain parameters active at export
// time. Validate rejects a document whose snapshot does not match the
// built-in chain.
type ValidationInfo struct {
	Scheme    string `json:"scheme"`
	ChainHash string `json:"chain_hash"`
}

// VEF is the full export document (spec.md §4.7.2/6.1).
type VEF struct {
	VEFVersion        string         `json:"vef_version"`
	VaultID           string         `json:"vault_id"`
	EncryptedPayload  string         `json:"encrypted_payload"`
	Crypto            CryptoInfo     `json:"crypto"`
	Timelock          TimelockInfo   `json:"timelock"`
	UnlockTimestamp   int64          `json:"unlock_timestamp"`
	CreatedAt         int64          `json:"created_at"`
	AppVersion        string         `json:"app_version"`
	Validation        ValidationInfo `json:"validation"`
	Name              string         `json:"name,omitempty"`
	DestroyAfterRead  bool           `json:"destroy_after_read,omitempty"`
}

// Bundle is the backup-bundle wrapper (spec.md §4.7.3/6.1).
type Bundle struct {
	VEFVersion      string `json:"vef_version"`
	BundleType      string `json:"bundle_type"`
	ExportTimestamp int64  `json:"export_timestamp"`
	AppVersion      string `json:"app_version"`
	Vaults          []VEF  `json:"vaults"`
}

func defaultCrypto() CryptoInfo {
	return CryptoInfo{Algorithm: cryptoAlgorithm, KeyLength: cryptoKeyLength, IVLength: cryptoIVLength}
}

func builtinChain() (string, string) {
	return chain.Scheme, chain.QuicknetChainHash
}

// RestoreStatus classifies a VEF's posture relative to "now" (spec.md
// §4.7.3's preview operation).
type RestoreStatus string

const (
	StatusLocked     RestoreStatus = "Locked"
	StatusUnlockable RestoreStatus = "Unlockable"
)

// RestorePreview summarizes a VEF for a restore confirmation UI without
// mutating anything.
type RestorePreview struct {
	VaultID          string
	Name             string
	UnlockTimestamp  int64
	CreatedAt        int64
	Status           RestoreStatus
	AlreadyExists    bool
	DestroyAfterRead bool
}

// RestoreOutcome is the per-vault result of restore_one.
type RestoreOutcome struct {
	ID       string
	Restored bool
	Skipped  bool
	Failed   bool
	Reason   string
}

// BundleOutcome is the aggregate result of restore_bundle.
type BundleOutcome struct {
	Total    int
	Restored int
	Skipped  int
	Errors   []string
}
