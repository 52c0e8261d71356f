// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package cloutkey

import (
	"errors"

	"github.com/complex-gh/cloutkey/internal/address"
	"github.com/complex-gh/cloutkey/internal/hdkey"
	"github.com/complex-gh/cloutkey/internal/keypair"
	"github.com/complex-gh/cloutkey/internal/mnemonic"
)

// Errors returned by this package. Compare with errors.Is; returned errors
// usually wrap one of these with more context.
var (
	ErrInvalidEntropyLength = mnemonic.ErrInvalidEntropyLength
	ErrInvalidMnemonic      = mnemonic.ErrInvalidMnemonic

	ErrInvalidSeed     = hdkey.ErrInvalidSeed
	ErrInvalidChildKey = hdkey.ErrInvalidChildKey
	ErrInvalidPath     = hdkey.ErrInvalidPath

	ErrInvalidPrivateKey = keypair.ErrInvalidPrivateKey

	ErrInvalidPayload   = address.ErrInvalidPayload
	ErrInvalidFormat    = address.ErrInvalidFormat
	ErrChecksumMismatch = address.ErrChecksumMismatch
	ErrPrefixMismatch   = address.ErrPrefixMismatch
	ErrUnknownNetwork   = address.ErrUnknownNetwork

	ErrUnknownBackend = errors.New("unknown derivation backend")
)
