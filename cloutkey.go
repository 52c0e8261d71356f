// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package cloutkey derives BitClout accounts from BIP39 mnemonic phrases.
//
// A phrase is stretched into a seed, the seed is walked down the BIP44 path
// m/44'/0'/0'/0/0, and the resulting secp256k1 public key is encoded twice:
// once as a BitClout public key address (BC1Y... on mainnet, tBC... on
// testnet) and once as a Bitcoin pay-to-pubkey-hash address.
//
// This package does not store keys, sign transactions or talk to the network.
package cloutkey

import (
	"encoding/hex"
	"fmt"

	"github.com/complex-gh/cloutkey/internal/address"
	"github.com/complex-gh/cloutkey/internal/hdkey"
	"github.com/complex-gh/cloutkey/internal/keypair"
	"github.com/complex-gh/cloutkey/internal/mnemonic"
)

// DerivationPath is the BIP44 path of the account key.
const DerivationPath = hdkey.DefaultPath

var accountPath = hdkey.MustParsePath(DerivationPath)

// Account is a derived BitClout account. It is immutable once built and safe
// for concurrent use.
type Account struct {
	mnemonic string
	network  Network
	key      *hdkey.ExtendedKey

	publicKey        []byte
	publicKeyAddress string
	bitcoinAddress   string
	xpub             string
}

// Generate creates an account from a fresh random mnemonic. The number of
// words follows WithEntropyBits and defaults to 12.
func Generate(network Network, opts ...Option) (*Account, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	phrase, err := mnemonic.New(o.entropyBits)
	if err != nil {
		return nil, fmt.Errorf("could not generate mnemonic: %w", err)
	}

	return fromMnemonic(phrase, network, o)
}

// FromMnemonic recovers the account for a phrase on the given network.
//
// The phrase is validated before any key stretching. A phrase with an
// unknown word, an unsupported length or a bad checksum fails with an error
// wrapping ErrInvalidMnemonic. On any error no account is returned.
func FromMnemonic(phrase string, network Network, opts ...Option) (*Account, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return fromMnemonic(phrase, network, o)
}

// PublicKeyFromMnemonic returns the BitClout public key address for phrase
// without a passphrase.
func PublicKeyFromMnemonic(phrase string, network Network) (string, error) {
	acc, err := FromMnemonic(phrase, network)
	if err != nil {
		return "", err
	}
	return acc.PublicKeyAddress(), nil
}

func fromMnemonic(phrase string, network Network, o *options) (*Account, error) {
	if _, err := address.Prefix(network, address.Application); err != nil {
		return nil, err
	}

	phrase = mnemonic.Normalize(phrase)
	seed, err := mnemonic.ToSeed(phrase, o.passphrase)
	if err != nil {
		return nil, err
	}
	defer wipe(seed)

	key, err := hdkey.DerivePath(o.deriver, seed, accountPath)
	if err != nil {
		return nil, fmt.Errorf("could not derive account key: %w", err)
	}

	acc, err := newAccount(phrase, network, key)
	if err != nil {
		key.Zero()
		return nil, err
	}
	return acc, nil
}

func newAccount(phrase string, network Network, key *hdkey.ExtendedKey) (*Account, error) {
	kp, err := keypair.FromExtendedKey(key)
	if err != nil {
		return nil, fmt.Errorf("could not build key pair: %w", err)
	}
	defer kp.Zero()

	pub := kp.CompressedPublicKey()

	appAddr, err := address.EncodeFor(network, address.Application, pub)
	if err != nil {
		return nil, fmt.Errorf("could not encode public key address: %w", err)
	}

	btcAddr, err := address.EncodeFor(network, address.Bitcoin, kp.Identifier())
	if err != nil {
		return nil, fmt.Errorf("could not encode bitcoin address: %w", err)
	}

	xpub, err := key.SerializePublic(network.Params())
	if err != nil {
		return nil, err
	}

	return &Account{
		mnemonic:         phrase,
		network:          network,
		key:              key,
		publicKey:        pub,
		publicKeyAddress: appAddr,
		bitcoinAddress:   btcAddr,
		xpub:             xpub,
	}, nil
}

// Mnemonic returns the phrase the account was derived from, with whitespace
// collapsed to single spaces.
func (a *Account) Mnemonic() string {
	return a.mnemonic
}

// PublicKeyAddress returns the BitClout public key address.
func (a *Account) PublicKeyAddress() string {
	return a.publicKeyAddress
}

// BitcoinAddress returns the P2PKH address of the same public key.
func (a *Account) BitcoinAddress() string {
	return a.bitcoinAddress
}

// Network returns the network the addresses were encoded for.
func (a *Account) Network() Network {
	return a.network
}

// Path returns the derivation path of the account key.
func (a *Account) Path() string {
	return accountPath.String()
}

// PublicKey returns a copy of the 33-byte compressed public key.
func (a *Account) PublicKey() []byte {
	return append([]byte(nil), a.publicKey...)
}

// PublicKeyHex returns the compressed public key as hex.
func (a *Account) PublicKeyHex() string {
	return hex.EncodeToString(a.publicKey)
}

// PrivateKeyHex returns the 32-byte private key as hex.
func (a *Account) PrivateKeyHex() string {
	return hex.EncodeToString(a.key.PrivateKey[:])
}

// ExtendedPublicKey returns the serialized extended public key of the
// account node (xpub on mainnet, tpub on testnet).
func (a *Account) ExtendedPublicKey() string {
	return a.xpub
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
