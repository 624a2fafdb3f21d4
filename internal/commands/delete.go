package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/reconcile/internal/ledger"
	"github.com/cleared-dev/reconcile/internal/report"
)

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete all transactions of the budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd.Context(), func(s *ledger.Session) error {
				n := len(s.Transactions())
				if err := s.DeleteTransactions(cmd.Context()); err != nil {
					return err
				}
				printf(cmd, "Deleted %s\n", report.Count(n, "transaction"))
				return nil
			})
		},
	}
}
