package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/term"

	"github.com/mirrorrc/mirrorrc/pkg/creds"
)

// NewSetupCredentialsCmd creates the one-time interactive credential capture.
// This is the only entry point that prompts; scheduled runs fail against the
// stored credential instead.
func NewSetupCredentialsCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup-credentials",
		Short: "Interactively store the share/notification credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := creds.NewFileStore()
			if err != nil {
				return errors.Errorf("locating credential store: %w", err)
			}

			reader := bufio.NewReader(cmd.InOrStdin())
			fmt.Fprint(cmd.OutOrStdout(), "username: ")
			username, err := reader.ReadString('\n')
			if err != nil {
				return errors.Errorf("reading username: %w", err)
			}
			username = strings.TrimSpace(username)
			if username == "" {
				return errors.Errorf("username must not be empty")
			}

			fmt.Fprint(cmd.OutOrStdout(), "secret: ")
			secret, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(cmd.OutOrStdout())
			if err != nil {
				return errors.Errorf("reading secret: %w", err)
			}

			cred := creds.Credential{Username: username, Secret: string(secret)}
			if err := store.Set(cmd.Context(), cred); err != nil {
				return errors.Errorf("storing credential: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "credential stored")
			return nil
		},
	}
}
