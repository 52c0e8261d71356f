// derive_address prints the BitClout public key address and the Bitcoin
// address for a BIP39 mnemonic, for testing.
//
// Usage:
//
//	go run ./scripts/derive_address "your 12 word seed phrase here"
//
// Or with stdin:
//
//	echo "your 12 word seed phrase" | go run ./scripts/derive_address
//
// Set CLOUTKEY_NETWORK=testnet to print testnet addresses.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/complex-gh/cloutkey"
)

func main() {
	var mnemonic string

	if len(os.Args) > 1 {
		mnemonic = strings.Join(os.Args[1:], " ")
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			mnemonic = strings.TrimSpace(scanner.Text())
		}
	}

	if mnemonic == "" {
		fmt.Fprintln(os.Stderr, "Usage: derive_address \"12 word seed phrase\"")
		fmt.Fprintln(os.Stderr, "   or: echo \"seed phrase\" | derive_address")
		os.Exit(1)
	}

	network := cloutkey.Mainnet
	if s := os.Getenv("CLOUTKEY_NETWORK"); s != "" {
		n, err := cloutkey.ParseNetwork(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		network = n
	}

	acc, err := cloutkey.FromMnemonic(mnemonic, network)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(acc.PublicKeyAddress())
	fmt.Println(acc.BitcoinAddress())
}
