// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package address implements Base58Check encoding with multi-byte version
// prefixes, as used by BitClout public key addresses, together with the
// fixed prefix table for the supported networks.
package address

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/mr-tron/base58"
)

// ChecksumSize is the number of double-SHA256 bytes appended to the payload.
const ChecksumSize = 4

var (
	// ErrInvalidPayload is returned when the prefix or payload to encode is empty.
	ErrInvalidPayload = errors.New("address prefix and payload must not be empty")

	// ErrInvalidFormat is returned when a string is not valid Base58 or is too
	// short to hold a prefix, a payload and a checksum.
	ErrInvalidFormat = errors.New("address is not valid base58check")

	// ErrChecksumMismatch is returned when the trailing checksum of a decoded
	// address does not match its contents.
	ErrChecksumMismatch = errors.New("address checksum mismatch")

	// ErrPrefixMismatch is returned when a decoded address carries a version
	// prefix other than the expected one.
	ErrPrefixMismatch = errors.New("address prefix mismatch")
)

// checksum returns the first four bytes of SHA256(SHA256(b)).
func checksum(b []byte) []byte {
	return chainhash.DoubleHashB(b)[:ChecksumSize]
}

// Encode returns Base58(prefix || payload || checksum) where checksum is the
// first four bytes of the double SHA-256 of prefix || payload.
func Encode(prefix, payload []byte) (string, error) {
	if len(prefix) == 0 || len(payload) == 0 {
		return "", ErrInvalidPayload
	}

	buf := make([]byte, 0, len(prefix)+len(payload)+ChecksumSize)
	buf = append(buf, prefix...)
	buf = append(buf, payload...)
	buf = append(buf, checksum(buf)...)

	return base58.Encode(buf), nil
}

// Decode reverses Encode. The first prefixLen bytes of the decoded data are
// returned as the prefix and the rest, minus the checksum, as the payload.
func Decode(addr string, prefixLen int) (prefix, payload []byte, err error) {
	if prefixLen <= 0 {
		return nil, nil, fmt.Errorf("prefix length %d: %w", prefixLen, ErrInvalidPayload)
	}

	raw, err := base58.Decode(addr)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(raw) < prefixLen+1+ChecksumSize {
		return nil, nil, fmt.Errorf("%w: %d bytes is too short", ErrInvalidFormat, len(raw))
	}

	body, sum := raw[:len(raw)-ChecksumSize], raw[len(raw)-ChecksumSize:]
	if !bytes.Equal(checksum(body), sum) {
		return nil, nil, ErrChecksumMismatch
	}

	return body[:prefixLen], body[prefixLen:], nil
}

// EncodeFor encodes payload with the prefix registered for network and target.
func EncodeFor(network Network, target Target, payload []byte) (string, error) {
	prefix, err := Prefix(network, target)
	if err != nil {
		return "", err
	}
	return Encode(prefix, payload)
}

// DecodeFor decodes addr and checks that it carries the prefix registered
// for network and target. Only the payload is returned.
func DecodeFor(network Network, target Target, addr string) ([]byte, error) {
	want, err := Prefix(network, target)
	if err != nil {
		return nil, err
	}

	prefix, payload, err := Decode(addr, len(want))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(prefix, want) {
		return nil, fmt.Errorf("%w: got %x, want %x for %s %s", ErrPrefixMismatch, prefix, want, network, target)
	}

	return payload, nil
}

// Identify decodes addr against every entry of the prefix table and reports
// the first network and target whose prefix matches. Longer prefixes are
// tried first so that a three byte application prefix is never mistaken for
// a one byte Bitcoin prefix.
func Identify(addr string) (Network, Target, []byte, error) {
	for _, e := range identifyOrder {
		payload, err := DecodeFor(e.network, e.target, addr)
		switch {
		case err == nil:
			return e.network, e.target, payload, nil
		case errors.Is(err, ErrPrefixMismatch):
			continue
		default:
			return 0, 0, nil, err
		}
	}
	return 0, 0, nil, fmt.Errorf("%w: no known network uses this prefix", ErrPrefixMismatch)
}
