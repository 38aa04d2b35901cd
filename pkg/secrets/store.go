package secrets

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrymomot/envir/pkg/store"
)

// Decrypting opens sealed values of the wrapped source. Plain values pass
// through unchanged.
type Decrypting struct {
	src    store.Source
	cipher *Cipher
}

// Decrypt wraps src.
func Decrypt(src store.Source, c *Cipher) *Decrypting {
	return &Decrypting{src: src, cipher: c}
}

func (d *Decrypting) Snapshot(ctx context.Context) (map[string]string, error) {
	m, err := d.src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	for k, v := range m {
		if !IsSealed(v) {
			continue
		}
		plain, err := d.cipher.Open(k, v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		m[k] = plain
	}
	return m, nil
}

// Encrypting seals values before they reach the wrapped sink.
type Encrypting struct {
	sink   store.Sink
	cipher *Cipher
	keys   []string
}

// EncryptOption configures an Encrypting sink.
type EncryptOption func(*Encrypting)

// WithKeys restricts sealing to the named variables. All values are sealed
// by default.
func WithKeys(keys ...string) EncryptOption {
	return func(e *Encrypting) {
		e.keys = append(e.keys, keys...)
	}
}

// Encrypt wraps sink.
func Encrypt(sink store.Sink, c *Cipher, opts ...EncryptOption) *Encrypting {
	e := &Encrypting{sink: sink, cipher: c}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply seals a copy of entries and forwards it. Values that are already
// sealed are forwarded as is.
func (e *Encrypting) Apply(ctx context.Context, entries map[string]string) error {
	out := make(map[string]string, len(entries))
	for k, v := range entries {
		if IsSealed(v) || (len(e.keys) > 0 && !slices.Contains(e.keys, k)) {
			out[k] = v
			continue
		}
		sealed, err := e.cipher.Seal(k, v)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		out[k] = sealed
	}
	return e.sink.Apply(ctx, out)
}
