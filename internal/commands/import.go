package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bankfold-dev/bankfold/internal/config"
	"github.com/bankfold-dev/bankfold/internal/importer"
	"github.com/bankfold-dev/bankfold/internal/importing"
	"github.com/bankfold-dev/bankfold/internal/logger"
)

func newImportCommand() *cobra.Command {
	var configPath string
	var assigns []string

	cmd := &cobra.Command{
		Use:   "import <statement-file>...",
		Short: "Import bank statement files and show resulting balances",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runImport(cmd.Context(), cmd.OutOrStdout(), cfg, args, assigns)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to bankfold.yaml")
	cmd.Flags().StringArrayVar(&assigns, "assign", nil, "category assignment as <transaction-stream-id>=<category-id>")

	return cmd
}

func runImport(ctx context.Context, out io.Writer, cfg *config.Config, files, assigns []string) error {
	log := logger.New()

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}

	registry := importer.DefaultRegistry()

	for _, file := range files {
		parser, err := registry.Resolve(file)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		batch, err := parseFile(parser, file)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		result, err := a.importer.Handle(ctx, batch)
		if err != nil {
			return fmt.Errorf("importing %s: %w", file, err)
		}

		log.Info().
			Str("file", file).
			Int("accounts", result.ImportedAccounts).
			Int("transactions", result.ImportedTransactions).
			Int("ignored", result.IgnoredTransactions).
			Msg("statement imported")
	}

	if err := applyRules(a, cfg.Rules); err != nil {
		return err
	}
	if err := applyAssigns(a, assigns); err != nil {
		return err
	}

	return printSummary(out, a)
}

func parseFile(p importer.Parser, path string) (importing.TransactionImport, error) {
	f, err := os.Open(path)
	if err != nil {
		return importing.TransactionImport{}, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	return p.Parse(f)
}

// applyRules assigns categories to freshly imported, still-unlabeled
// transactions whose description matches a configured rule.
func applyRules(a *app, rules []config.AssignRule) error {
	if len(rules) == 0 {
		return nil
	}

	transactions, err := a.transactionQuery.Handle()
	if err != nil {
		return err
	}

	for _, txn := range transactions {
		if txn.CategoryID != nil {
			continue
		}
		for _, rule := range rules {
			if !strings.Contains(strings.ToUpper(txn.Description), strings.ToUpper(rule.Match)) {
				continue
			}
			if err := a.assigner.Handle(txn.TransactionID, rule.Category); err != nil {
				a.log.Warn().
					Str("transaction", txn.TransactionID).
					Str("category", rule.Category).
					Err(err).
					Msg("rule assignment skipped")
			} else {
				a.log.Info().
					Str("transaction", txn.TransactionID).
					Str("category", rule.Category).
					Msg("rule assignment applied")
			}
			break
		}
	}
	return nil
}

// applyAssigns handles explicit --assign flags.
func applyAssigns(a *app, assigns []string) error {
	for _, assign := range assigns {
		transactionID, categoryID, ok := strings.Cut(assign, "=")
		if !ok {
			return fmt.Errorf("invalid --assign %q: want <transaction-stream-id>=<category-id>", assign)
		}
		if err := a.assigner.Handle(transactionID, categoryID); err != nil {
			return fmt.Errorf("assigning %s to %s: %w", categoryID, transactionID, err)
		}
	}
	return nil
}

func printSummary(out io.Writer, a *app) error {
	balances, err := a.balanceQuery.Handle()
	if err != nil {
		return err
	}
	transactions, err := a.transactionQuery.Handle()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Balances:")
	for _, balance := range balances {
		fmt.Fprintf(out, "  %-20s %12s %s\n", balance.AccountNumber, balance.Balance.StringFixed(2), balance.Currency)
	}

	fmt.Fprintln(out, "Transactions:")
	for _, txn := range transactions {
		categoryName := "-"
		if txn.CategoryName != nil {
			categoryName = *txn.CategoryName
		}
		fmt.Fprintf(out, "  %s  %-10s %12s %s  %-8s %-14s %s\n",
			txn.Date.Format("2006-01-02"),
			txn.AccountNumber,
			txn.Amount.Value.StringFixed(2),
			txn.Amount.Currency,
			txn.FlowType,
			categoryName,
			txn.Description,
		)
	}
	return nil
}
