// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package hdkey builds BIP32 extended keys from a seed and walks derivation
// paths. The arithmetic is delegated to a Deriver so that the underlying
// library can be replaced without touching the path logic.
package hdkey

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

const (
	// HardenedKeyStart is the index of the first hardened child.
	HardenedKeyStart = hdkeychain.HardenedKeyStart

	// MinSeedBytes and MaxSeedBytes bound the seed accepted by Master.
	MinSeedBytes = hdkeychain.MinSeedBytes
	MaxSeedBytes = hdkeychain.MaxSeedBytes

	// KeySize is the length of a private key and of a chain code.
	KeySize = 32
)

var (
	// ErrInvalidSeed is returned when a seed has the wrong length or yields
	// an unusable master key.
	ErrInvalidSeed = errors.New("invalid seed for master key")

	// ErrInvalidChildKey is returned when a derivation step produces a zero
	// scalar or one not below the curve order. Callers may retry with the
	// next index; nothing is retried automatically.
	ErrInvalidChildKey = errors.New("derived child key is invalid")
)

// ExtendedKey is a private BIP32 node.
type ExtendedKey struct {
	PrivateKey        [KeySize]byte
	ChainCode         [KeySize]byte
	Depth             uint8
	ParentFingerprint uint32
	ChildIndex        uint32
}

// Deriver computes master and child extended keys.
type Deriver interface {
	// Master returns the root node for seed.
	Master(seed []byte) (*ExtendedKey, error)

	// Child returns the child of parent at index. Indices at or above
	// HardenedKeyStart select hardened derivation.
	Child(parent *ExtendedKey, index uint32) (*ExtendedKey, error)
}

// Zero overwrites the private key and chain code.
func (k *ExtendedKey) Zero() {
	if k == nil {
		return
	}
	for i := range k.PrivateKey {
		k.PrivateKey[i] = 0
	}
	for i := range k.ChainCode {
		k.ChainCode[i] = 0
	}
}

// IsHardened reports whether the key was derived with a hardened index.
func (k *ExtendedKey) IsHardened() bool {
	return k.ChildIndex >= HardenedKeyStart
}

// Serialize returns the base58 extended private key (xprv, tprv) for params.
func (k *ExtendedKey) Serialize(params *chaincfg.Params) string {
	hk := k.keychain(params)
	defer hk.Zero()

	return hk.String()
}

// SerializePublic returns the base58 extended public key (xpub, tpub) for params.
func (k *ExtendedKey) SerializePublic(params *chaincfg.Params) (string, error) {
	hk := k.keychain(params)
	defer hk.Zero()

	pub, err := hk.Neuter()
	if err != nil {
		return "", fmt.Errorf("could not neuter extended key: %w", err)
	}
	return pub.String(), nil
}

func (k *ExtendedKey) keychain(params *chaincfg.Params) *hdkeychain.ExtendedKey {
	fp := make([]byte, 4)
	binary.BigEndian.PutUint32(fp, k.ParentFingerprint)
	return hdkeychain.NewExtendedKey(
		params.HDPrivateKeyID[:],
		append([]byte(nil), k.PrivateKey[:]...),
		append([]byte(nil), k.ChainCode[:]...),
		fp,
		k.Depth,
		k.ChildIndex,
		true,
	)
}

// DeriveChild derives the child of parent at index, adding HardenedKeyStart
// when hardened is set. An index that is already in the hardened range is
// rejected when hardened is set.
func DeriveChild(d Deriver, parent *ExtendedKey, index uint32, hardened bool) (*ExtendedKey, error) {
	if hardened {
		if index >= HardenedKeyStart {
			return nil, fmt.Errorf("%w: index %d is already hardened", ErrInvalidPath, index)
		}
		index += HardenedKeyStart
	}
	return d.Child(parent, index)
}

// DerivePath builds the master key for seed and derives every element of
// path in turn. The master and intermediate keys are zeroed before
// returning, whether or not derivation succeeds.
func DerivePath(d Deriver, seed []byte, path Path) (*ExtendedKey, error) {
	key, err := d.Master(seed)
	if err != nil {
		return nil, err
	}

	for i, index := range path {
		child, err := d.Child(key, index)
		key.Zero()
		if err != nil {
			return nil, fmt.Errorf("could not derive %s: %w", path[:i+1], err)
		}
		key = child
	}

	return key, nil
}
