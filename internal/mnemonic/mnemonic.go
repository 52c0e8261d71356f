// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package mnemonic generates and validates BIP39 mnemonic phrases and
// stretches them into 64-byte seeds.
//
// Words are looked up in the go-bip39 wordlist that is active when a
// function is called. The wordlist is process wide, so it should be chosen
// once with bip39.SetWordList before any phrase is handled. The wordlists
// are stored in NFKD form, so phrases are decomposed before the lookup.
package mnemonic

import (
	"crypto/sha512"
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultEntropyBits yields a 12 word phrase.
	DefaultEntropyBits = 128

	// MinEntropyBits and MaxEntropyBits bound the supported entropy sizes.
	// Sizes in between must be multiples of 32.
	MinEntropyBits = 128
	MaxEntropyBits = 256

	// SeedSize is the length of the seed returned by ToSeed.
	SeedSize = 64

	// SeedIterations is the PBKDF2 iteration count used by ToSeed.
	SeedIterations = 2048
)

var (
	// ErrInvalidEntropyLength is returned for entropy that is not a multiple
	// of 32 bits between 128 and 256 bits.
	ErrInvalidEntropyLength = errors.New("entropy length must be a multiple of 32 bits between 128 and 256")

	// ErrInvalidMnemonic is returned for phrases with an unknown word, a bad
	// word count or a checksum that does not match.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
)

// New returns a phrase encoding bits of fresh random entropy.
func New(bits int) (string, error) {
	if !validBits(bits) {
		return "", fmt.Errorf("%w: got %d bits", ErrInvalidEntropyLength, bits)
	}

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("could not read entropy: %w", err)
	}
	defer wipe(entropy)

	return FromEntropy(entropy)
}

// FromEntropy encodes entropy and its checksum as a phrase.
func FromEntropy(entropy []byte) (string, error) {
	if !validBits(len(entropy) * 8) {
		return "", fmt.Errorf("%w: got %d bits", ErrInvalidEntropyLength, len(entropy)*8)
	}

	words, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("could not create a mnemonic set of words: %w", err)
	}
	return words, nil
}

// Normalize returns the NFKD form of the phrase with any run of whitespace,
// including newlines and ideographic spaces, collapsed to a single space.
func Normalize(phrase string) string {
	return strings.Join(strings.Fields(norm.NFKD.String(phrase)), " ")
}

// Check returns an error wrapping ErrInvalidMnemonic when the phrase has an
// unknown word, an unsupported length or a bad checksum.
func Check(phrase string) error {
	if _, err := bip39.EntropyFromMnemonic(Normalize(phrase)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return nil
}

// Validate reports whether the phrase is a well formed mnemonic.
func Validate(phrase string) bool {
	return Check(phrase) == nil
}

// ToSeed validates the phrase and derives its seed with PBKDF2-HMAC-SHA512.
// The phrase goes through Normalize and "mnemonic"+passphrase is NFKD
// normalized. The caller owns the returned slice and should wipe it when done.
func ToSeed(phrase, passphrase string) ([]byte, error) {
	if err := Check(phrase); err != nil {
		return nil, err
	}

	password := []byte(Normalize(phrase))
	salt := []byte(norm.NFKD.String("mnemonic" + passphrase))
	defer wipe(password)

	return pbkdf2.Key(password, salt, SeedIterations, SeedSize, sha512.New), nil
}

// WordCount returns the number of words that encode bits of entropy.
func WordCount(bits int) int {
	return bits / 32 * 3
}

// EntropyBits is the inverse of WordCount. It fails for word counts that do
// not correspond to a supported entropy size.
func EntropyBits(words int) (int, error) {
	bits := words / 3 * 32
	if words%3 != 0 || !validBits(bits) {
		return 0, fmt.Errorf("%w: %d words (must be 12, 15, 18, 21 or 24)", ErrInvalidEntropyLength, words)
	}
	return bits, nil
}

func validBits(bits int) bool {
	return bits%32 == 0 && bits >= MinEntropyBits && bits <= MaxEntropyBits
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
