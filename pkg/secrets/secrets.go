package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"strings"
)

// Prefix marks a sealed value. Values without it are treated as plain text.
const Prefix = "enc:v1:"

// Config is loaded with envir from ENVIR_SECRET_KEY and ENVIR_SECRET_SCOPE.
type Config struct {
	_ struct{} `envir:"prefix=ENVIR_SECRET_"`

	Key   *Key   `envir:"skip_export"`
	Scope string `envir:"default=envir"`
}

// Cipher seals and opens single variable values with AES-256-GCM. The
// variable name is bound as additional data, so a sealed value cannot be
// moved to another key.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher derives a value key from master and scope. Ciphers built from
// the same master key but different scopes cannot open each other's values.
func NewCipher(master []byte, scope string) (*Cipher, error) {
	if err := ValidateKey(master); err != nil {
		return nil, err
	}

	key, err := deriveKey(master, scope)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	return &Cipher{aead: aead}, nil
}

// FromConfig builds a Cipher from cfg. ErrNoKey is returned when no key is set.
func FromConfig(cfg Config) (*Cipher, error) {
	if cfg.Key == nil {
		return nil, ErrNoKey
	}
	return NewCipher(*cfg.Key, cfg.Scope)
}

// Seal encrypts value for the variable name and returns Prefix followed by
// base64 of nonce, ciphertext and tag.
func (c *Cipher) Seal(name, value string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(value), []byte(name))
	return Prefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal for the same variable name.
func (c *Cipher) Open(name, value string) (string, error) {
	encoded, ok := strings.CutPrefix(value, Prefix)
	if !ok {
		return "", ErrInvalidCiphertext
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.Join(ErrInvalidCiphertext, err)
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize+c.aead.Overhead() {
		return "", ErrInvalidCiphertext
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plain, err := c.aead.Open(nil, nonce, ciphertext, []byte(name))
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}
	return string(plain), nil
}

// IsSealed reports whether value carries the sealed-value prefix.
func IsSealed(value string) bool {
	return strings.HasPrefix(value, Prefix)
}
