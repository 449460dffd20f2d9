package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newKeygenCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a secret key and print it with its public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := o.adapter.GenerateSecretKey()
			if err != nil {
				return err
			}
			public, err := o.adapter.DerivePublicKey(secret)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "secret %s\n", secret)
			fmt.Fprintf(out, "public %s\n", public)
			return nil
		},
	}
}

func newPubkeyCmd(o *options) *cobra.Command {
	var secretFile string

	cmd := &cobra.Command{
		Use:   "pubkey [secret-hex]",
		Short: "Print the compressed public key of a secret key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var secret string
			if len(args) == 1 {
				secret = args[0]
			}
			secret, err := resolveSecret(secret, secretFile)
			if err != nil {
				return err
			}

			public, err := o.adapter.DerivePublicKey(secret)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), public)
			return nil
		},
	}
	addSecretFileFlag(cmd.Flags(), &secretFile)

	return cmd
}

func addSecretFileFlag(fs *pflag.FlagSet, file *string) {
	fs.StringVar(file, "secret-file", "", "read the secret key from a file")
}

// resolveSecret returns the secret given inline or read from file. Exactly
// one of them must be set.
func resolveSecret(secret, file string) (string, error) {
	switch {
	case secret != "" && file != "":
		return "", fmt.Errorf("give the secret key either inline or as a file, not both")
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read secret file: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	case secret != "":
		return secret, nil
	default:
		return "", fmt.Errorf("a secret key is required")
	}
}
