package cmd

import (
	"fmt"

	"github.com/psommers/rolegate/internal/config"
	"github.com/spf13/cobra"
)

var generateSessionKeyCmd = &cobra.Command{
	Use:   "generate-session-key",
	Short: "Generate a random key for signing session cookies",
	Long: `Generate a random key for signing session cookies.

Without a configured key rolegate picks a random one on every start, which
signs out all users on restart. Add the generated key to your configuration file.`,
	RunE: generateSessionKey,
}

func init() {
	rootCmd.AddCommand(generateSessionKeyCmd)
}

func generateSessionKey(_ *cobra.Command, _ []string) error {
	key, err := config.GenerateSessionKey()
	if err != nil {
		return fmt.Errorf("failed to generate session key: %w", err)
	}

	fmt.Println("Generated session key:")
	fmt.Println()
	fmt.Println(key)
	fmt.Println()
	fmt.Println("Add it to your configuration file:")
	fmt.Println()
	fmt.Printf("session_key: \"%s\"\n", key)
	fmt.Println()
	fmt.Println("Or set the ROLEGATE_SESSION_KEY environment variable.")

	return nil
}
