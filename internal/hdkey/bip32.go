// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdkey

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/tyler-smith/go-bip32"
)

// BIP32 derives keys with github.com/tyler-smith/go-bip32.
type BIP32 struct{}

var _ Deriver = BIP32{}

// Master implements Deriver.
func (BIP32) Master(seed []byte) (*ExtendedKey, error) {
	if len(seed) < MinSeedBytes || len(seed) > MaxSeedBytes {
		return nil, fmt.Errorf("%w: seed is %d bytes, must be between %d and %d", ErrInvalidSeed, len(seed), MinSeedBytes, MaxSeedBytes)
	}

	master, err := bip32.NewMasterKey(seed)
	switch {
	case errors.Is(err, bip32.ErrInvalidPrivateKey):
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	case err != nil:
		return nil, fmt.Errorf("could not create master key: %w", err)
	}
	return fromBIP32(master), nil
}

// Child implements Deriver.
func (BIP32) Child(parent *ExtendedKey, index uint32) (*ExtendedKey, error) {
	tmp := toBIP32(parent)
	defer wipeBIP32(tmp)

	child, err := tmp.NewChildKey(index)
	switch {
	case errors.Is(err, bip32.ErrInvalidPrivateKey):
		return nil, fmt.Errorf("%w: index %d", ErrInvalidChildKey, index)
	case err != nil:
		return nil, fmt.Errorf("could not derive child %d: %w", index, err)
	}
	return fromBIP32(child), nil
}

func toBIP32(k *ExtendedKey) *bip32.Key {
	childNumber := make([]byte, 4)
	binary.BigEndian.PutUint32(childNumber, k.ChildIndex)
	fingerprint := make([]byte, 4)
	binary.BigEndian.PutUint32(fingerprint, k.ParentFingerprint)

	return &bip32.Key{
		Version:     bip32.PrivateWalletVersion,
		Depth:       k.Depth,
		ChildNumber: childNumber,
		FingerPrint: fingerprint,
		ChainCode:   append([]byte(nil), k.ChainCode[:]...),
		Key:         append([]byte(nil), k.PrivateKey[:]...),
		IsPrivate:   true,
	}
}

// fromBIP32 copies k and wipes its secrets.
func fromBIP32(k *bip32.Key) *ExtendedKey {
	out := &ExtendedKey{Depth: k.Depth}
	if len(k.ChildNumber) == 4 {
		out.ChildIndex = binary.BigEndian.Uint32(k.ChildNumber)
	}
	if len(k.FingerPrint) == 4 {
		out.ParentFingerprint = binary.BigEndian.Uint32(k.FingerPrint)
	}

	// go-bip32 keeps private keys as big-endian integers, so a key may come
	// back short or with a leading zero byte.
	key := k.Key
	if len(key) > KeySize {
		key = key[len(key)-KeySize:]
	}
	copy(out.PrivateKey[KeySize-len(key):], key)
	copy(out.ChainCode[:], k.ChainCode)
	wipeBIP32(k)

	return out
}

func wipeBIP32(k *bip32.Key) {
	clear(k.Key)
	clear(k.ChainCode)
}
