// Package main provides the cloutkey CLI tool for deriving BitClout addresses
// from seed phrases.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/complex-gh/cloutkey"
	"github.com/complex-gh/cloutkey/internal/mnemonic"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	networkKey       = "network"
	languageKey      = "language"
	passphraseKey    = "passphrase"
	askPassphraseKey = "ask-passphrase"
	backendKey       = "backend"
	verboseKey       = "verbose"
	jsonKey          = "json"
	publicKeyKey     = "public-key"
	xpubKey          = "xpub"
	privateKeyKey    = "private"
	wordsKey         = "words"

	envPrefix = "CLOUTKEY"
)

type config struct {
	network       cloutkey.Network
	backend       cloutkey.Backend
	passphrase    string
	passphraseArg bool
	askPassphrase bool
	json          bool
	showPublicKey bool
	showXpub      bool
	showPrivate   bool
}

func loadConfig(cmd *cobra.Command, v *viper.Viper) (*config, error) {
	network, err := cloutkey.ParseNetwork(v.GetString(networkKey))
	if err != nil {
		return nil, err
	}
	backend, err := cloutkey.ParseBackend(v.GetString(backendKey))
	if err != nil {
		return nil, err
	}
	return &config{
		network:       network,
		backend:       backend,
		passphrase:    v.GetString(passphraseKey),
		passphraseArg: cmd.Flags().Changed(passphraseKey),
		askPassphrase: v.GetBool(askPassphraseKey),
		json:          v.GetBool(jsonKey),
		showPublicKey: v.GetBool(publicKeyKey),
		showXpub:      v.GetBool(xpubKey),
		showPrivate:   v.GetBool(privateKeyKey),
	}, nil
}

// options builds the derivation options. The passphrase prompt is written
// to prompt.
func (c *config) options(prompt io.Writer) ([]cloutkey.Option, error) {
	passphrase := c.passphrase
	if c.askPassphrase {
		pass, err := promptSecret(prompt, "Enter BIP39 passphrase: ")
		if err != nil {
			return nil, err
		}
		passphrase = pass
	} else if c.passphraseArg && passphrase != "" {
		log.Warn().Msg("passphrase given on the command line may end up in your shell history")
	}

	return []cloutkey.Option{
		cloutkey.WithPassphrase(passphrase),
		cloutkey.WithBackend(c.backend),
	}, nil
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "cloutkey [words...]",
		Short: "Derive BitClout addresses from a seed phrase",
		Long: `Derive the BitClout public key address and the Bitcoin address of a
BIP39 seed phrase, using the derivation path m/44'/0'/0'/0/0.

The phrase can be given as arguments, piped on stdin, or typed at the
prompt when stdin is a terminal.

Every flag can also be set through the environment with the CLOUTKEY_
prefix, for example CLOUTKEY_NETWORK=testnet.

SECURITY TIP: Add a space before the command to prevent it from being
saved in your shell history. For example:
     cloutkey nothing sister welcome ...
    ^ (note the leading space)
Most shells (bash, zsh) are configured to ignore commands that start
with a space. Check your HISTCONTROL or HIST_IGNORE_SPACE settings.`,
		Example: `  cloutkey
  echo "$MNEMONIC" | cloutkey
  echo "$MNEMONIC" | cloutkey --network testnet
  echo "$MNEMONIC" | cloutkey --ask-passphrase --public-key --xpub
  echo "$MNEMONIC" | cloutkey --json
  cloutkey generate --words 24
  cloutkey decode BC1YLi7rwzYb5r8okqFfmiefucuFeHH2uLRfgiK1ehrZy3QvP5jXzrN`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogger(cmd.ErrOrStderr(), v.GetBool(verboseKey))
			return setLanguage(v.GetString(languageKey))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}

			phrase, err := readMnemonic(cmd, args)
			if err != nil {
				return err
			}

			opts, err := cfg.options(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			log.Debug().
				Str("network", cfg.network.String()).
				Str("backend", cfg.backend.String()).
				Int("words", len(strings.Fields(phrase))).
				Msg("recovering account")

			acc, err := cloutkey.FromMnemonic(phrase, cfg.network, opts...)
			if err != nil {
				return fmt.Errorf("could not recover account: %w", err)
			}

			return printAccount(cmd.OutOrStdout(), cfg, acc, false)
		},
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new seed phrase and print its addresses",
		Example: `  cloutkey generate
  cloutkey generate --words 24 --network testnet`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}

			bits, err := mnemonic.EntropyBits(v.GetInt(wordsKey))
			if err != nil {
				return fmt.Errorf("invalid word count: %w", err)
			}

			opts, err := cfg.options(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts = append(opts, cloutkey.WithEntropyBits(bits))

			log.Debug().
				Str("network", cfg.network.String()).
				Int("bits", bits).
				Msg("generating account")

			acc, err := cloutkey.Generate(cfg.network, opts...)
			if err != nil {
				return fmt.Errorf("could not generate account: %w", err)
			}

			return printAccount(cmd.OutOrStdout(), cfg, acc, true)
		},
	}

	decodeCmd := &cobra.Command{
		Use:          "decode <address>",
		Short:        "Decode a BitClout or Bitcoin address",
		Example:      `  cloutkey decode BC1YLi7rwzYb5r8okqFfmiefucuFeHH2uLRfgiK1ehrZy3QvP5jXzrN`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := cloutkey.DecodeAddress(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("could not decode address: %w", err)
			}
			return printDecoded(cmd.OutOrStdout(), v.GetBool(jsonKey), d)
		},
	}

	manCmd := &cobra.Command{
		Use:          "man",
		Args:         cobra.NoArgs,
		Short:        "generate man pages",
		Hidden:       true,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manPage, err := mcobra.NewManPage(1, cmd.Root())
			if err != nil {
				//nolint: wrapcheck
				return err
			}
			manPage = manPage.WithSection("Copyright", "(C) 2025-2026 complex.\n"+
				"Released under MIT license.")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), manPage.Build(roff.NewDocument()))
			return err
		},
	}

	// completionCmd generates shell completion scripts for bash, zsh, fish, and powershell.
	completionCmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for cloutkey.

To load completions:

Bash:
  $ source <(cloutkey completion bash)

Zsh:
  $ cloutkey completion zsh > "${fpath[1]}/_cloutkey"

Fish:
  $ cloutkey completion fish | source

PowerShell:
  PS> cloutkey completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unknown shell: %s", args[0])
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP(networkKey, "n", "mainnet", "Network to encode addresses for (mainnet or testnet)")
	flags.StringP(languageKey, "l", "en", "Wordlist language, by name (japanese) or tag (ja)")
	flags.String(passphraseKey, "", "Optional BIP39 passphrase")
	flags.Bool(askPassphraseKey, false, "Prompt for the BIP39 passphrase")
	flags.String(backendKey, "keychain", "BIP32 implementation (keychain or bip32)")
	flags.BoolP(verboseKey, "v", false, "Log debug information to stderr")
	flags.Bool(jsonKey, false, "Print JSON instead of text")
	flags.Bool(publicKeyKey, false, "Also print the compressed public key")
	flags.Bool(xpubKey, false, "Also print the extended public key of the account")
	flags.Bool(privateKeyKey, false, "Also print the private key")
	generateCmd.Flags().IntP(wordsKey, "w", 12, "Number of words (12, 15, 18, 21 or 24)")

	_ = v.BindPFlags(flags)
	_ = v.BindPFlags(generateCmd.Flags())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(generateCmd, decodeCmd, manCmd, completionCmd)

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// readMnemonic returns the phrase from the arguments, the terminal or stdin,
// in the normalized form the wordlists are stored in.
func readMnemonic(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return mnemonic.Normalize(strings.Join(args, " ")), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		phrase, err := promptSecret(cmd.ErrOrStderr(), "Enter seed phrase: ")
		if err != nil {
			return "", err
		}
		return mnemonic.Normalize(phrase), nil
	}

	bts, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("could not read seed phrase: %w", err)
	}
	phrase := mnemonic.Normalize(string(bts))
	if phrase == "" {
		return "", fmt.Errorf("no seed phrase given: pass it as arguments or on stdin")
	}
	return phrase, nil
}

type accountOutput struct {
	Mnemonic          string `json:"mnemonic,omitempty"`
	Network           string `json:"network"`
	Path              string `json:"path"`
	PublicKeyAddress  string `json:"public_key_address"`
	BitcoinAddress    string `json:"bitcoin_address"`
	PublicKey         string `json:"public_key,omitempty"`
	ExtendedPublicKey string `json:"extended_public_key,omitempty"`
	PrivateKey        string `json:"private_key,omitempty"`
}

func printAccount(w io.Writer, cfg *config, acc *cloutkey.Account, withMnemonic bool) error {
	out := accountOutput{
		Network:          acc.Network().String(),
		Path:             acc.Path(),
		PublicKeyAddress: acc.PublicKeyAddress(),
		BitcoinAddress:   acc.BitcoinAddress(),
	}
	if withMnemonic {
		out.Mnemonic = acc.Mnemonic()
	}
	if cfg.showPublicKey {
		out.PublicKey = acc.PublicKeyHex()
	}
	if cfg.showXpub {
		out.ExtendedPublicKey = acc.ExtendedPublicKey()
	}
	if cfg.showPrivate {
		out.PrivateKey = acc.PrivateKeyHex()
	}

	if cfg.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if out.Mnemonic != "" {
		printBlock(w, fmt.Sprintf("%d word seed phrase", len(strings.Fields(out.Mnemonic))), out.Mnemonic)
	}
	printBlock(w, fmt.Sprintf("bitclout public key (%s)", out.Network), out.PublicKeyAddress)
	printBlock(w, fmt.Sprintf("bitcoin address (%s)", out.Network), out.BitcoinAddress)
	if out.PublicKey != "" {
		printBlock(w, "compressed public key", out.PublicKey)
	}
	if out.ExtendedPublicKey != "" {
		printBlock(w, "extended public key "+out.Path, out.ExtendedPublicKey)
	}
	if out.PrivateKey != "" {
		printBlock(w, "private key", out.PrivateKey)
	}
	return nil
}

type decodedOutput struct {
	Network string `json:"network"`
	Kind    string `json:"kind"`
	Payload string `json:"payload"`
}

func printDecoded(w io.Writer, asJSON bool, d *cloutkey.DecodedAddress) error {
	out := decodedOutput{
		Network: d.Network.String(),
		Kind:    kindName(d.Kind),
		Payload: fmt.Sprintf("%x", d.Payload),
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printBlock(w, fmt.Sprintf("%s (%s)", out.Kind, out.Network), out.Payload)
	return nil
}

func kindName(k cloutkey.Kind) string {
	if k == cloutkey.KindPublicKey {
		return "bitclout public key"
	}
	return "bitcoin public key hash"
}

func printBlock(w io.Writer, title, body string) {
	_, _ = fmt.Fprintf(w, "[%s]\n\n%s\n\n", title, body)
}
