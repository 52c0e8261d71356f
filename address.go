// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package cloutkey

import (
	"github.com/complex-gh/cloutkey/internal/address"
)

// Network selects mainnet or testnet address prefixes.
type Network = address.Network

// Supported networks.
const (
	Mainnet = address.Mainnet
	Testnet = address.Testnet
)

// ParseNetwork maps "mainnet" or "testnet" (case insensitive) to a Network.
func ParseNetwork(s string) (Network, error) {
	return address.ParseNetwork(s)
}

// Kind tells a BitClout public key address from a Bitcoin address.
type Kind = address.Target

// Address kinds.
const (
	KindBitcoin   = address.Bitcoin
	KindPublicKey = address.Application
)

// DecodedAddress is the result of DecodeAddress.
type DecodedAddress struct {
	Network Network
	Kind    Kind
	// Payload is the compressed public key for KindPublicKey and the
	// HASH160 of it for KindBitcoin.
	Payload []byte
}

// DecodeAddress checks the checksum of addr and identifies its network and
// kind from the version prefix.
func DecodeAddress(addr string) (*DecodedAddress, error) {
	network, target, payload, err := address.Identify(addr)
	if err != nil {
		return nil, err
	}
	return &DecodedAddress{
		Network: network,
		Kind:    target,
		Payload: payload,
	}, nil
}

// DecodePublicKeyAddress returns the compressed public key encoded in a
// BitClout public key address for network. An address for another network
// fails with ErrPrefixMismatch.
func DecodePublicKeyAddress(addr string, network Network) ([]byte, error) {
	return address.DecodeFor(network, address.Application, addr)
}
