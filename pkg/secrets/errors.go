package secrets

import "errors"

var (
	// Key errors
	ErrInvalidKey          = errors.New("invalid secret key: must be 32 bytes, base64 encoded")
	ErrNoKey               = errors.New("no secret key configured, use ENVIR_SECRET_KEY env var")
	ErrKeyDerivationFailed = errors.New("key derivation failed")

	// Encryption/decryption errors
	ErrEncryptionFailed  = errors.New("encryption failed")
	ErrDecryptionFailed  = errors.New("decryption failed")
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")
)
