package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/reconcile/internal/exchange"
	"github.com/cleared-dev/reconcile/internal/ledger"
	"github.com/cleared-dev/reconcile/internal/report"
)

func newExportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the budget's transactions to a .csv or .json file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			file := ""
			if len(args) > 0 {
				file = args[0]
			} else {
				var err error
				file, err = a.prompt(false).Input(ctx, "File to write to [csv/json]", defaultExportFile(a.cfg.Path))
				if err != nil {
					return err
				}
			}

			return a.withSession(ctx, func(s *ledger.Session) error {
				txns := s.Transactions()
				if err := exchange.WriteLedger(file, txns); err != nil {
					return fmt.Errorf("writing %s: %w", file, err)
				}
				printf(cmd, "Exported %s to %s\n", report.Count(len(txns), "transaction"), file)
				return nil
			})
		},
	}
}

// defaultExportFile names the export after the config: budget.yaml exports
// to budget.json.
func defaultExportFile(configPath string) string {
	base := filepath.Base(configPath)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base + ".json"
}
