// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package cloutkey

import (
	"fmt"
	"strings"

	"github.com/complex-gh/cloutkey/internal/hdkey"
	"github.com/complex-gh/cloutkey/internal/mnemonic"
)

// Backend selects the library used for BIP32 arithmetic. Every backend
// derives the same keys.
type Backend int

const (
	// BackendKeychain uses btcutil's hdkeychain package.
	BackendKeychain Backend = iota
	// BackendBIP32 uses tyler-smith/go-bip32.
	BackendBIP32
)

// ParseBackend maps "keychain" or "bip32" to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keychain", "hdkeychain":
		return BackendKeychain, nil
	case "bip32":
		return BackendBIP32, nil
	default:
		return 0, fmt.Errorf("%w: %q (must be keychain or bip32)", ErrUnknownBackend, s)
	}
}

func (b Backend) String() string {
	switch b {
	case BackendKeychain:
		return "keychain"
	case BackendBIP32:
		return "bip32"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

func (b Backend) deriver() (hdkey.Deriver, error) {
	switch b {
	case BackendKeychain:
		return hdkey.Keychain{}, nil
	case BackendBIP32:
		return hdkey.BIP32{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownBackend, int(b))
	}
}

type options struct {
	passphrase  string
	entropyBits int
	backend     Backend
	deriver     hdkey.Deriver
}

// Option configures Generate and FromMnemonic.
type Option func(*options)

// WithPassphrase sets the optional BIP39 passphrase. The same phrase with a
// different passphrase yields an unrelated account.
func WithPassphrase(passphrase string) Option {
	return func(o *options) {
		o.passphrase = passphrase
	}
}

// WithEntropyBits sets the entropy size used by Generate: 128, 160, 192,
// 224 or 256 bits for 12 to 24 words. FromMnemonic ignores it.
func WithEntropyBits(bits int) Option {
	return func(o *options) {
		o.entropyBits = bits
	}
}

// WithBackend selects the BIP32 implementation.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

func buildOptions(opts []Option) (*options, error) {
	o := &options{
		entropyBits: mnemonic.DefaultEntropyBits,
		backend:     BackendKeychain,
	}
	for _, opt := range opts {
		opt(o)
	}

	d, err := o.backend.deriver()
	if err != nil {
		return nil, err
	}
	o.deriver = d

	return o, nil
}
