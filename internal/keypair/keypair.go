// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package keypair turns a 32-byte private key into a secp256k1 key pair and
// exposes the public key encodings needed for addresses.
package keypair

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"

	"github.com/complex-gh/cloutkey/internal/hdkey"
)

const (
	// PrivateKeySize is the length of a serialized private scalar.
	PrivateKeySize = btcec.PrivKeyBytesLen

	// CompressedPublicKeySize is the length of a SEC1 compressed point.
	CompressedPublicKeySize = btcec.PubKeyBytesLenCompressed

	// IdentifierSize is the length of HASH160 of the public key.
	IdentifierSize = 20
)

// ErrInvalidPrivateKey is returned for a scalar that is zero, not below the
// curve order, or not 32 bytes long.
var ErrInvalidPrivateKey = errors.New("invalid secp256k1 private key")

// KeyPair is a secp256k1 private scalar and its public point.
type KeyPair struct {
	priv *btcec.PrivateKey
	pub  *btcec.PublicKey
}

// FromPrivateKey computes P = k*G for the big-endian scalar k.
func FromPrivateKey(b []byte) (*KeyPair, error) {
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPrivateKey, len(b), PrivateKeySize)
	}

	var k btcec.ModNScalar
	if overflow := k.SetByteSlice(b); overflow {
		k.Zero()
		return nil, fmt.Errorf("%w: scalar is not below the curve order", ErrInvalidPrivateKey)
	}
	if k.IsZero() {
		return nil, fmt.Errorf("%w: scalar is zero", ErrInvalidPrivateKey)
	}

	priv := btcec.PrivKeyFromScalar(&k)
	k.Zero()

	return &KeyPair{priv: priv, pub: priv.PubKey()}, nil
}

// FromExtendedKey builds the key pair for the private key of an extended key.
func FromExtendedKey(k *hdkey.ExtendedKey) (*KeyPair, error) {
	return FromPrivateKey(k.PrivateKey[:])
}

// CompressedPublicKey returns the 33-byte SEC1 encoding of the public point.
func (kp *KeyPair) CompressedPublicKey() []byte {
	return kp.pub.SerializeCompressed()
}

// Identifier returns RIPEMD160(SHA256(compressed public key)), the payload of
// a pay-to-pubkey-hash address.
func (kp *KeyPair) Identifier() []byte {
	return btcutil.Hash160(kp.CompressedPublicKey())
}

// PrivateKey returns a copy of the 32-byte private scalar.
func (kp *KeyPair) PrivateKey() []byte {
	return kp.priv.Serialize()
}

// Zero clears the private scalar. The public key stays usable.
func (kp *KeyPair) Zero() {
	kp.priv.Zero()
}
