package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bankfold-dev/bankfold/internal/config"
	"github.com/bankfold-dev/bankfold/internal/logger"
)

func newCategoriesCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the transaction categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runCategories(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to bankfold.yaml")

	return cmd
}

func runCategories(out io.Writer, cfg *config.Config) error {
	a, err := newApp(cfg, logger.New())
	if err != nil {
		return err
	}

	categories, err := a.categoryQuery.Handle()
	if err != nil {
		return err
	}

	for _, category := range categories {
		fmt.Fprintf(out, "%-8s %-34s %s\n", category.FlowType, category.CategoryID, category.Name)
	}
	return nil
}
