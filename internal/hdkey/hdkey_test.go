// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdkey

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/matryer/is"
)

// bip32Vector1Seed is the seed of test vector 1 from BIP32.
const bip32Vector1Seed = "000102030405060708090a0b0c0d0e0f"

var derivers = map[string]Deriver{
	"keychain": Keychain{},
	"bip32":    BIP32{},
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// TestMaster_BIP32Vector1 checks the master key of BIP32 test vector 1
func TestMaster_BIP32Vector1(t *testing.T) {
	for name, d := range derivers {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)

			master, err := d.Master(mustHex(t, bip32Vector1Seed))
			is.NoErr(err)
			is.Equal(master.Depth, uint8(0))
			is.Equal(master.ChildIndex, uint32(0))
			is.Equal(master.ParentFingerprint, uint32(0))

			is.Equal(master.Serialize(&chaincfg.MainNetParams),
				"xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi")

			xpub, err := master.SerializePublic(&chaincfg.MainNetParams)
			is.NoErr(err)
			is.Equal(xpub, "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8")
		})
	}
}

// TestDeriveChild_BIP32Vector1 checks the first hardened child of test vector 1
func TestDeriveChild_BIP32Vector1(t *testing.T) {
	for name, d := range derivers {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)

			master, err := d.Master(mustHex(t, bip32Vector1Seed))
			is.NoErr(err)

			child, err := DeriveChild(d, master, 0, true)
			is.NoErr(err)
			is.Equal(child.Depth, uint8(1))
			is.Equal(child.ChildIndex, uint32(HardenedKeyStart))
			is.True(child.IsHardened())
			is.Equal(child.Serialize(&chaincfg.MainNetParams),
				"xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7")
		})
	}
}

// TestDeriveChild_AlreadyHardened tests that a hardened index is not hardened twice
func TestDeriveChild_AlreadyHardened(t *testing.T) {
	is := is.New(t)

	master, err := Keychain{}.Master(mustHex(t, bip32Vector1Seed))
	is.NoErr(err)

	_, err = DeriveChild(Keychain{}, master, HardenedKeyStart+1, true)
	is.True(errors.Is(err, ErrInvalidPath))
}

// TestDerivers_Agree verifies that both derivers produce identical keys on every step of the default path
func TestDerivers_Agree(t *testing.T) {
	is := is.New(t)

	seeds := []string{
		bip32Vector1Seed,
		"fffcf9f6f3f0edeae7e4e1dedbd8d5d2cfccc9c6c3c0bdbab7b4b1aeaba8a5a29f9c999693908d8a8784817e7b7875726f6c696663605d5a5754514e4b484542",
	}

	for _, s := range seeds {
		seed := mustHex(t, s)

		a, err := Keychain{}.Master(seed)
		is.NoErr(err)
		b, err := BIP32{}.Master(seed)
		is.NoErr(err)
		is.Equal(*a, *b)

		for _, index := range MustParsePath(DefaultPath) {
			a, err = Keychain{}.Child(a, index)
			is.NoErr(err)
			b, err = BIP32{}.Child(b, index)
			is.NoErr(err)
			is.Equal(*a, *b)
		}
	}
}

// TestMaster_InvalidSeed tests seed length validation
func TestMaster_InvalidSeed(t *testing.T) {
	for name, d := range derivers {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)

			_, err := d.Master(make([]byte, MinSeedBytes-1))
			is.True(errors.Is(err, ErrInvalidSeed))

			_, err = d.Master(make([]byte, MaxSeedBytes+1))
			is.True(errors.Is(err, ErrInvalidSeed))
		})
	}
}

// recorder wraps a Deriver and keeps every key it hands out
type recorder struct {
	Deriver
	keys   []*ExtendedKey
	failAt int
}

func (r *recorder) Master(seed []byte) (*ExtendedKey, error) {
	k, err := r.Deriver.Master(seed)
	if err == nil {
		r.keys = append(r.keys, k)
	}
	return k, err
}

func (r *recorder) Child(parent *ExtendedKey, index uint32) (*ExtendedKey, error) {
	if r.failAt > 0 && len(r.keys) == r.failAt {
		return nil, ErrInvalidChildKey
	}
	k, err := r.Deriver.Child(parent, index)
	if err == nil {
		r.keys = append(r.keys, k)
	}
	return k, err
}

func isZero(k *ExtendedKey) bool {
	return k.PrivateKey == [KeySize]byte{} && k.ChainCode == [KeySize]byte{}
}

// TestDerivePath_ZeroesIntermediateKeys verifies that only the returned key keeps its secrets
func TestDerivePath_ZeroesIntermediateKeys(t *testing.T) {
	is := is.New(t)

	r := &recorder{Deriver: Keychain{}}
	path := MustParsePath(DefaultPath)

	key, err := DerivePath(r, mustHex(t, bip32Vector1Seed), path)
	is.NoErr(err)
	is.Equal(len(r.keys), len(path)+1)
	is.Equal(key, r.keys[len(r.keys)-1])
	is.Equal(key.Depth, uint8(len(path)))
	is.True(!isZero(key))

	for _, k := range r.keys[:len(r.keys)-1] {
		is.True(isZero(k))
	}
}

// TestDerivePath_ZeroesOnError verifies that a failed derivation leaves no secrets behind
func TestDerivePath_ZeroesOnError(t *testing.T) {
	is := is.New(t)

	r := &recorder{Deriver: BIP32{}, failAt: 3}

	_, err := DerivePath(r, mustHex(t, bip32Vector1Seed), MustParsePath(DefaultPath))
	is.True(errors.Is(err, ErrInvalidChildKey))
	is.Equal(len(r.keys), 3)

	for _, k := range r.keys {
		is.True(isZero(k))
	}
}

// TestExtendedKey_Zero tests that Zero clears secrets and tolerates nil
func TestExtendedKey_Zero(t *testing.T) {
	is := is.New(t)

	k, err := Keychain{}.Master(mustHex(t, bip32Vector1Seed))
	is.NoErr(err)
	is.True(!isZero(k))

	k.Zero()
	is.True(isZero(k))

	var nilKey *ExtendedKey
	nilKey.Zero()
}
