// Package commands wires the CLI: statement import, category listing,
// and setup.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankfold-dev/bankfold/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bankfold",
		Short:   "Personal bank account and transaction tracking",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newCategoriesCommand())

	return rootCmd
}
