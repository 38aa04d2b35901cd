package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required size of a master key.
	KeySize = 32 // 256 bits for AES-256

	// hkdfInfo separates envir keys from other users of the same master key.
	hkdfInfo = "envir-secrets-v1"
)

// Key is a master key. Its text form is standard base64, so it can be
// loaded from an environment variable with envir.
type Key []byte

// UnmarshalText decodes a base64 key and checks its length.
func (k *Key) UnmarshalText(text []byte) error {
	b := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(b, text)
	if err != nil {
		return errors.Join(ErrInvalidKey, err)
	}
	if err := ValidateKey(b[:n]); err != nil {
		return err
	}
	*k = b[:n]
	return nil
}

// MarshalText encodes the key as standard base64.
func (k Key) MarshalText() ([]byte, error) {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(k)))
	base64.StdEncoding.Encode(out, k)
	return out, nil
}

// ValidateKey checks that key has KeySize bytes.
func ValidateKey(key []byte) error {
	if len(key) != KeySize {
		return ErrInvalidKey
	}
	return nil
}

// deriveKey expands the master key with HKDF-SHA-256, salted by scope.
// The caller clears the returned key once the cipher is built.
func deriveKey(master []byte, scope string) ([]byte, error) {
	r := hkdf.New(sha256.New, master, []byte(scope), []byte(hkdfInfo))

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return key, nil
}

// GenerateKey creates a new random master key.
func GenerateKey() (Key, error) {
	key := make(Key, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
