// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package address

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// ErrUnknownNetwork is returned for a network or target outside the prefix table.
var ErrUnknownNetwork = errors.New("unknown network")

// Network selects one of the two supported chains.
type Network int

const (
	// Mainnet is the production network.
	Mainnet Network = iota
	// Testnet is the test network.
	Testnet
)

// Target selects which kind of address is produced for a network.
type Target int

const (
	// Bitcoin is a P2PKH address over the public key identifier.
	Bitcoin Target = iota
	// Application is a BitClout public key address over the compressed public key.
	Application
)

var prefixes = map[Network]map[Target][]byte{
	Mainnet: {
		Bitcoin:     {0x00},
		Application: {0xcd, 0x14, 0x00},
	},
	Testnet: {
		Bitcoin:     {0x6f},
		Application: {0x11, 0xc2, 0x00},
	},
}

var identifyOrder = []struct {
	network Network
	target  Target
}{
	{Mainnet, Application},
	{Testnet, Application},
	{Mainnet, Bitcoin},
	{Testnet, Bitcoin},
}

// Prefix returns a copy of the version prefix for network and target.
func Prefix(network Network, target Target) ([]byte, error) {
	targets, ok := prefixes[network]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNetwork, int(network))
	}
	p, ok := targets[target]
	if !ok {
		return nil, fmt.Errorf("%w: target %d", ErrUnknownNetwork, int(target))
	}
	return append([]byte(nil), p...), nil
}

// ParseNetwork maps "mainnet" or "testnet" (case insensitive) to a Network.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mainnet", "main":
		return Mainnet, nil
	case "testnet", "test":
		return Testnet, nil
	default:
		return 0, fmt.Errorf("%w: %q (must be mainnet or testnet)", ErrUnknownNetwork, s)
	}
}

func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	default:
		return fmt.Sprintf("network(%d)", int(n))
	}
}

// Params returns the btcd chain parameters used to serialize extended keys
// for the network.
func (n Network) Params() *chaincfg.Params {
	if n == Testnet {
		return &chaincfg.TestNet3Params
	}
	return &chaincfg.MainNetParams
}

func (t Target) String() string {
	switch t {
	case Bitcoin:
		return "bitcoin"
	case Application:
		return "application"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}
