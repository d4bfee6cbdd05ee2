package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bankfold-dev/bankfold/internal/config"
)

func newInitCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default bankfold.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			path := filepath.Join(dir, "bankfold.yaml")
			if err := config.Save(path, config.Default(email)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "user@bankfold.local", "email recorded as the acting user")

	return cmd
}
