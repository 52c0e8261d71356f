// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdkey

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// Keychain derives keys with btcutil's hdkeychain package.
type Keychain struct{}

var _ Deriver = Keychain{}

// Master implements Deriver.
func (Keychain) Master(seed []byte) (*ExtendedKey, error) {
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	switch {
	case errors.Is(err, hdkeychain.ErrInvalidSeedLen), errors.Is(err, hdkeychain.ErrUnusableSeed):
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	case err != nil:
		return nil, fmt.Errorf("could not create master key: %w", err)
	}
	defer master.Zero()

	return fromKeychain(master)
}

// Child implements Deriver.
func (Keychain) Child(parent *ExtendedKey, index uint32) (*ExtendedKey, error) {
	hk := parent.keychain(&chaincfg.MainNetParams)
	defer hk.Zero()

	child, err := hk.Derive(index)
	switch {
	case errors.Is(err, hdkeychain.ErrInvalidChild):
		return nil, fmt.Errorf("%w: index %d", ErrInvalidChildKey, index)
	case err != nil:
		return nil, fmt.Errorf("could not derive child %d: %w", index, err)
	}
	defer child.Zero()

	return fromKeychain(child)
}

func fromKeychain(k *hdkeychain.ExtendedKey) (*ExtendedKey, error) {
	priv, err := k.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("could not read private key: %w", err)
	}
	defer priv.Zero()

	out := &ExtendedKey{
		Depth:             k.Depth(),
		ParentFingerprint: k.ParentFingerprint(),
		ChildIndex:        k.ChildIndex(),
	}
	priv.Key.PutBytes(&out.PrivateKey)
	copy(out.ChainCode[:], k.ChainCode())

	return out, nil
}
