package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "signup-cli",
	Short: "Sign Up command-line tool",
	Long: `signup-cli checks and creates registrations without the web form.

Available commands:
  validate    Check a registration against the form rules
  register    Create an account in the configured account store
  version     Print the version

Use "signup-cli [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newValidateCmd(), newRegisterCmd())
}
