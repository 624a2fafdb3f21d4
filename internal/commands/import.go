package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/reconcile/internal/exchange"
	"github.com/cleared-dev/reconcile/internal/importer"
	"github.com/cleared-dev/reconcile/internal/ledger"
	"github.com/cleared-dev/reconcile/internal/pipeline"
	"github.com/cleared-dev/reconcile/internal/report"
	"github.com/cleared-dev/reconcile/internal/rules"
)

// ledgerTarget is the import target that submits to the budget.
const ledgerTarget = "actual"

func newImportCommand(a *app) *cobra.Command {
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import the account statements",
		Long: "Parses the statements of every account with a folder and either imports them\n" +
			"into the budget (file \"actual\") or writes them to a .csv or .json file\n" +
			"relative to the config. Without a file argument you are asked for one.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) > 0 {
				target = args[0]
			}
			return runImport(cmd, a, opts, target)
		},
	}

	cmd.Flags().StringVarP(&opts.Month, "month", "m", "",
		"month to import, e.g. 2021-01 for a specific month, or 2021-01,2021-02 for a range. "+
			"Ranges are inclusive and can be open-ended with a comma at the start or end")
	cmd.Flags().StringVarP(&opts.Account, "account", "a", "", "account to import")

	return cmd
}

func runImport(cmd *cobra.Command, a *app, opts pipeline.Options, target string) error {
	ctx := cmd.Context()

	rs, err := rules.Compile(a.cfg.Categories)
	if err != nil {
		return err
	}
	im := pipeline.NewImporter(importer.DefaultRegistry(a.tableExtractor()), rs)
	batch, err := im.Import(ctx, a.cfg, opts)
	if err != nil {
		return err
	}

	for _, r := range batch {
		if err := report.Import(cmd.OutOrStdout(), r.Account, r.Transactions); err != nil {
			return err
		}
	}

	if target == "" {
		target, err = a.prompt(false).Input(ctx, "Write to 'actual' or [file.json/csv]?", ledgerTarget)
		if err != nil {
			return err
		}
	}

	all := batch.All()
	if target == ledgerTarget {
		return a.withSession(ctx, func(s *ledger.Session) error {
			if err := s.ImportTransactions(ctx, batch.ByAccount()); err != nil {
				return err
			}
			printf(cmd, "Imported %s\n", report.Count(len(all), "transaction"))
			return nil
		})
	}

	path := a.cfg.Resolve(target)
	if err := exchange.WriteRecords(path, all); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	printf(cmd, "Wrote %s to %s\n", report.Count(len(all), "transaction"), path)
	return nil
}
