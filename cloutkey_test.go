// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package cloutkey

import (
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/matryer/is"
	"github.com/tyler-smith/go-bip39"
	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

const testMnemonic = "nothing sister welcome shield process fall gather illness business amused inquiry clock"

const (
	testPublicKey  = "0342686c15beacaabf1721c1d4862a503a2ce1c1c50b0231ea491a068cbab05168"
	testPrivateKey = "1e61f924bd373c4ca15c9653c29000884e247851e2d9547d92d221999f656a47"
)

// TestFromMnemonic_KnownVector tests the addresses of a known account on both networks
func TestFromMnemonic_KnownVector(t *testing.T) {
	tests := []struct {
		network Network
		app     string
		btc     string
	}{
		{Mainnet, "BC1YLi7rwzYb5r8okqFfmiefucuFeHH2uLRfgiK1ehrZy3QvP5jXzrN", "1KtDtLvJW2jcKrLiw1WLKP41eAYugWAkW"},
		{Testnet, "tBCKXF6yApYVx3jVjpzDmEui2DH2bnoqRAjcRywPiEP1zKspCHDe3B", "mfqqWwRu7XTzPSKxSVytAEbNsdmFp9w58R"},
	}

	for _, tt := range tests {
		t.Run(tt.network.String(), func(t *testing.T) {
			is := is.New(t)

			acc, err := FromMnemonic(testMnemonic, tt.network)
			is.NoErr(err)
			is.Equal(acc.PublicKeyAddress(), tt.app)
			is.Equal(acc.BitcoinAddress(), tt.btc)
			is.Equal(acc.PublicKeyHex(), testPublicKey)
			is.Equal(acc.PrivateKeyHex(), testPrivateKey)
			is.Equal(acc.Mnemonic(), testMnemonic)
			is.Equal(acc.Network(), tt.network)
			is.Equal(acc.Path(), "m/44'/0'/0'/0/0")
		})
	}
}

// TestFromMnemonic_Passphrase tests that a BIP39 passphrase selects a different account
func TestFromMnemonic_Passphrase(t *testing.T) {
	is := is.New(t)

	acc, err := FromMnemonic(testMnemonic, Mainnet, WithPassphrase("TREZOR"))
	is.NoErr(err)
	is.Equal(acc.PublicKeyAddress(), "BC1YLgdPgPzqXovze8Jca1mQTGVi3n5r1pUcrsBxpqygyjSU6eNptXz")
	is.Equal(acc.BitcoinAddress(), "1JiEcUFRgei5SH1sAgerC6cztxbxNnxchC")
	is.Equal(acc.PublicKeyHex(), "027e111c4c8c4de2418d9bdd6b2ef1de5a7b0f13bc9347e0ac63d0c68c4d0964ca")

	// an empty passphrase is the default
	plain, err := FromMnemonic(testMnemonic, Mainnet, WithPassphrase(""))
	is.NoErr(err)
	is.Equal(plain.PublicKeyHex(), testPublicKey)
}

// TestFromMnemonic_ComposedJapanese tests that a Japanese phrase typed in
// composed form recovers the account and is kept in decomposed form
func TestFromMnemonic_ComposedJapanese(t *testing.T) {
	is := is.New(t)

	bip39.SetWordList(wordlists.Japanese)
	t.Cleanup(func() { bip39.SetWordList(wordlists.English) })

	phrase := strings.Repeat("\u3042\u3044\u3053\u304f\u3057\u3093\u3000", 11) + "\u3042\u304a\u305e\u3089"
	acc, err := FromMnemonic(phrase, Mainnet, WithPassphrase("㍍ガバヴァぱばぐゞちぢ十人十色"))
	is.NoErr(err)
	is.Equal(acc.PublicKeyAddress(), "BC1YLhhoxtVQEj2zUdS33ghTFpLCGqMzwkUpBMKH4aSLcEvH7sab4Uw")
	is.Equal(acc.BitcoinAddress(), "1D8qzQEi3RHBRDa5wTS5fYY6WWMVbfxUW")
	is.Equal(acc.PublicKeyHex(), "030bcbcea318c97e231a20ede08432ec8e2df41958e11e62c3badc003f1e22b44b")
	is.Equal(acc.Mnemonic(), norm.NFKD.String(strings.ReplaceAll(phrase, "\u3000", " ")))
}

// TestFromMnemonic_Deterministic verifies repeated derivations agree
func TestFromMnemonic_Deterministic(t *testing.T) {
	is := is.New(t)

	a, err := FromMnemonic(testMnemonic, Mainnet)
	is.NoErr(err)
	b, err := FromMnemonic(testMnemonic, Mainnet)
	is.NoErr(err)

	is.Equal(a.PublicKeyAddress(), b.PublicKeyAddress())
	is.Equal(a.BitcoinAddress(), b.BitcoinAddress())
	is.Equal(a.PublicKey(), b.PublicKey())
	is.Equal(a.ExtendedPublicKey(), b.ExtendedPublicKey())
}

// TestFromMnemonic_Whitespace tests that spacing in the phrase does not matter
func TestFromMnemonic_Whitespace(t *testing.T) {
	is := is.New(t)

	messy := "\n  " + strings.ReplaceAll(testMnemonic, " ", "   ") + "\n"
	acc, err := FromMnemonic(messy, Mainnet)
	is.NoErr(err)
	is.Equal(acc.Mnemonic(), testMnemonic)
	is.Equal(acc.PublicKeyHex(), testPublicKey)
}

// TestFromMnemonic_Invalid tests that bad phrases are rejected before derivation
func TestFromMnemonic_Invalid(t *testing.T) {
	words := strings.Fields(testMnemonic)

	tests := map[string]string{
		"corrupted last word": strings.Join(append(words[:11:11], "abandon"), " "),
		"unknown word":        strings.Replace(testMnemonic, "sister", "sisters", 1),
		"missing word":        strings.Join(words[:11], " "),
		"empty":               "",
	}

	for name, phrase := range tests {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)

			acc, err := FromMnemonic(phrase, Mainnet)
			is.True(errors.Is(err, ErrInvalidMnemonic))
			is.True(acc == nil)

			_, err = PublicKeyFromMnemonic(phrase, Mainnet)
			is.True(errors.Is(err, ErrInvalidMnemonic))
		})
	}
}

// TestFromMnemonic_UnknownNetwork tests that only the two known networks are accepted
func TestFromMnemonic_UnknownNetwork(t *testing.T) {
	is := is.New(t)

	acc, err := FromMnemonic(testMnemonic, Network(7))
	is.True(errors.Is(err, ErrUnknownNetwork))
	is.True(acc == nil)
}

// TestFromMnemonic_Backends tests that both BIP32 backends derive the same account
func TestFromMnemonic_Backends(t *testing.T) {
	is := is.New(t)

	keychain, err := FromMnemonic(testMnemonic, Mainnet, WithBackend(BackendKeychain))
	is.NoErr(err)
	bip32, err := FromMnemonic(testMnemonic, Mainnet, WithBackend(BackendBIP32))
	is.NoErr(err)

	is.Equal(keychain.PrivateKeyHex(), bip32.PrivateKeyHex())
	is.Equal(keychain.PublicKeyAddress(), bip32.PublicKeyAddress())
	is.Equal(keychain.ExtendedPublicKey(), bip32.ExtendedPublicKey())

	_, err = FromMnemonic(testMnemonic, Mainnet, WithBackend(Backend(9)))
	is.True(errors.Is(err, ErrUnknownBackend))
}

// TestParseBackend tests backend names
func TestParseBackend(t *testing.T) {
	is := is.New(t)

	for s, want := range map[string]Backend{
		"":         BackendKeychain,
		"keychain": BackendKeychain,
		"BIP32":    BackendBIP32,
	} {
		got, err := ParseBackend(s)
		is.NoErr(err)
		is.Equal(got, want)
	}

	_, err := ParseBackend("secp")
	is.True(errors.Is(err, ErrUnknownBackend))
	is.Equal(BackendBIP32.String(), "bip32")
}

// TestBitcoinAddress_MatchesBtcutil cross-checks the P2PKH address with btcutil
func TestBitcoinAddress_MatchesBtcutil(t *testing.T) {
	params := map[Network]*chaincfg.Params{
		Mainnet: &chaincfg.MainNetParams,
		Testnet: &chaincfg.TestNet3Params,
	}

	for network, p := range params {
		t.Run(network.String(), func(t *testing.T) {
			is := is.New(t)

			acc, err := FromMnemonic(testMnemonic, network)
			is.NoErr(err)

			addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(acc.PublicKey()), p)
			is.NoErr(err)
			is.Equal(acc.BitcoinAddress(), addr.EncodeAddress())
		})
	}
}

// TestExtendedPublicKey tests the version prefix of the serialized account node
func TestExtendedPublicKey(t *testing.T) {
	is := is.New(t)

	main, err := FromMnemonic(testMnemonic, Mainnet)
	is.NoErr(err)
	is.True(strings.HasPrefix(main.ExtendedPublicKey(), "xpub"))

	test, err := FromMnemonic(testMnemonic, Testnet)
	is.NoErr(err)
	is.True(strings.HasPrefix(test.ExtendedPublicKey(), "tpub"))
}

// TestGenerate_Recover tests that a generated phrase recovers the same account
func TestGenerate_Recover(t *testing.T) {
	for _, bits := range []int{128, 160, 192, 224, 256} {
		is := is.New(t)

		acc, err := Generate(Mainnet, WithEntropyBits(bits))
		is.NoErr(err)
		is.Equal(len(strings.Fields(acc.Mnemonic())), bits/32*3)
		is.True(strings.HasPrefix(acc.PublicKeyAddress(), "BC1Y"))

		back, err := FromMnemonic(acc.Mnemonic(), Mainnet)
		is.NoErr(err)
		is.Equal(back.PublicKeyAddress(), acc.PublicKeyAddress())
		is.Equal(back.BitcoinAddress(), acc.BitcoinAddress())
	}
}

// TestGenerate_InvalidEntropy tests unsupported entropy sizes
func TestGenerate_InvalidEntropy(t *testing.T) {
	is := is.New(t)

	acc, err := Generate(Mainnet, WithEntropyBits(100))
	is.True(errors.Is(err, ErrInvalidEntropyLength))
	is.True(acc == nil)
}

// TestNetworkIsolation tests that one key yields distinct addresses per network
func TestNetworkIsolation(t *testing.T) {
	is := is.New(t)

	main, err := FromMnemonic(testMnemonic, Mainnet)
	is.NoErr(err)
	test, err := FromMnemonic(testMnemonic, Testnet)
	is.NoErr(err)

	is.Equal(main.PublicKey(), test.PublicKey())
	is.True(main.PublicKeyAddress() != test.PublicKeyAddress())
	is.True(main.BitcoinAddress() != test.BitcoinAddress())

	is.True(strings.HasPrefix(main.PublicKeyAddress(), "BC1Y"))
	is.True(strings.HasPrefix(test.PublicKeyAddress(), "tBC"))
	is.True(strings.HasPrefix(main.BitcoinAddress(), "1"))
	is.True(strings.HasPrefix(test.BitcoinAddress(), "m") || strings.HasPrefix(test.BitcoinAddress(), "n"))

	for _, acc := range []*Account{main, test} {
		app, err := DecodeAddress(acc.PublicKeyAddress())
		is.NoErr(err)
		is.Equal(app.Network, acc.Network())
		is.Equal(app.Kind, KindPublicKey)
		is.Equal(app.Payload, acc.PublicKey())

		btc, err := DecodeAddress(acc.BitcoinAddress())
		is.NoErr(err)
		is.Equal(btc.Network, acc.Network())
		is.Equal(btc.Kind, KindBitcoin)
	}
}

// TestPublicKey_Copy tests that callers cannot modify the account's key
func TestPublicKey_Copy(t *testing.T) {
	is := is.New(t)

	acc, err := FromMnemonic(testMnemonic, Mainnet)
	is.NoErr(err)

	pub := acc.PublicKey()
	pub[0] ^= 0xff
	is.Equal(acc.PublicKeyHex(), testPublicKey)
}

// TestAccount_ConcurrentReads exercises accessors from several goroutines
func TestAccount_ConcurrentReads(t *testing.T) {
	is := is.New(t)

	acc, err := FromMnemonic(testMnemonic, Mainnet)
	is.NoErr(err)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = acc.PublicKeyAddress() + hex.EncodeToString(acc.PublicKey())
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		is.Equal(r, results[0])
	}
}

// TestPublicKeyFromMnemonic tests the convenience helper
func TestPublicKeyFromMnemonic(t *testing.T) {
	is := is.New(t)

	addr, err := PublicKeyFromMnemonic(testMnemonic, Mainnet)
	is.NoErr(err)
	is.Equal(addr, "BC1YLi7rwzYb5r8okqFfmiefucuFeHH2uLRfgiK1ehrZy3QvP5jXzrN")
}
