// Package secrets encrypts individual variable values at rest.
//
// A master key is expanded with HKDF-SHA-256, salted by a scope string, into
// an AES-256-GCM key. Each value is sealed with a random nonce and the
// variable name as additional data, then stored as
//
//	enc:v1:<base64(nonce | ciphertext | tag)>
//
// Decrypt and Encrypt wrap any store.Source or store.Sink, so secrets can
// live in a .env file, a Redis hash or a database table next to plain
// values:
//
//	cfg, _ := envir.FromEnv[secrets.Config]()
//	c, err := secrets.FromConfig(cfg)
//	if err != nil {
//		// handle error
//	}
//
//	local, _ := file.NewLocal(".env.sealed")
//	m, err := secrets.Decrypt(local, c).Snapshot(ctx)
//	if err != nil {
//		// handle error
//	}
//	app, err := envir.From[AppConfig](m)
//
// All errors wrap a sentinel such as ErrInvalidKey or ErrDecryptionFailed.
package secrets
