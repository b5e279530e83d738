// Package aead implements spec.md's C2: a fixed AES-256-GCM recipe with a
// 96-bit random nonce and 128-bit tag, ciphertext formatted
// nonce || GCM_ct_with_tag. Grounded on the teacher's
// internal/plugin/encrypt/dek provider, stripped of its MSEH header framing
// and key-rotation/legacy-key fallback — here there is exactly one key per
// call, supplied by the caller.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"github.com/driftlock/timevault/internal/vaulterrors"
)

const (
	// KeySize is the fixed DataKey length in bytes.
	KeySize = 32
	// NonceSize is the GCM nonce length in bytes (96 bits).
	NonceSize = 12
	// TagSize is the GCM authentication tag length in bytes (128 bits).
	TagSize = 16
)

// DataKey is a 32-byte AES-256 key.
type DataKey [KeySize]byte

// Blob is an encrypted AEAD payload: nonce || ciphertext-with-tag.
type Blob []byte

// Zero overwrites the key with zeros in place.
func (k *DataKey) Zero() {
	for i := range k {
		k[i] = 0
	}
}

// Zero overwrites the blob with zeros in place.
func (b Blob) Zero() {
	for i := range b {
		b[i] = 0
	}
}

// GenerateKey draws a fresh 32-byte key from the system CSPRNG.
func GenerateKey() (DataKey, error) {
	var key DataKey
	if _, err := rand.Read(key[:]); err != nil {
		return DataKey{}, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	return key, nil
}

// Encrypt seals plaintext under key. It never fails except on OOM/RNG
// exhaustion. An empty plaintext yields a 28-byte blob (12-byte nonce plus
// the 16-byte tag and no ciphertext bytes).
func Encrypt(plaintext []byte, key DataKey) (Blob, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	out := make([]byte, 0, NonceSize+len(plaintext)+TagSize)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plaintext, nil)
	return out, nil
}

// Decrypt opens blob under key. The only failure mode is AEADAuthFail, for
// any tag mismatch, truncation, or wrong-key decrypt.
func Decrypt(blob Blob, key DataKey) ([]byte, error) {
	if len(blob) < NonceSize+TagSize {
		return nil, vaulterrors.New(vaulterrors.KindAEADAuthFail, "blob shorter than nonce+tag")
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce, ciphertext := blob[:NonceSize], blob[NonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindAEADAuthFail, err)
	}
	return plaintext, nil
}

func newGCM(key DataKey) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	return gcm, nil
}
