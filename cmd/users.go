package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/psommers/rolegate/internal/auth"
	"github.com/psommers/rolegate/internal/config"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List the configured users and their roles",
	Long:  `List the users that can sign in, together with their roles. Passwords are never printed.`,
	RunE:  listUsers,
}

func init() {
	rootCmd.AddCommand(usersCmd)
}

func listUsers(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := auth.NewStaticStore(cfg.AuthUsers())
	if err != nil {
		return fmt.Errorf("failed to create credential store: %w", err)
	}

	return printUsers(os.Stdout, store)
}

func printUsers(out io.Writer, store auth.CredentialStore) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tROLE") //nolint:errcheck
	for _, u := range store.Users() {
		fmt.Fprintf(tw, "%s\t%s\n", u.Username, u.Role) //nolint:errcheck
	}
	return tw.Flush()
}
