package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/reconcile/internal/ledger"
	"github.com/cleared-dev/reconcile/internal/logger"
)

func newSetupCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Recreate the budget's categories and accounts from the config",
		Long: "Deletes every category and account of the budget, then creates the categories\n" +
			"and accounts of the config. Accounts with an initial balance get a starting\n" +
			"balance transaction.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd.Context(), func(s *ledger.Session) error {
				return runSetup(cmd, a, s)
			})
		},
	}
}

func runSetup(cmd *cobra.Command, a *app, s *ledger.Session) error {
	ctx := cmd.Context()

	if err := s.DeleteCategories(ctx); err != nil {
		return err
	}
	printf(cmd, "Categories deleted\n")

	if err := s.SetupCategories(ctx, a.cfg.Categories); err != nil {
		return err
	}
	printf(cmd, "Categories set up\n")

	if err := s.DeleteAccounts(ctx); err != nil {
		return err
	}
	printf(cmd, "Accounts deleted\n")

	if err := s.SetupAccounts(ctx, a.cfg.Accounts); err != nil {
		return err
	}
	printf(cmd, "Accounts set up\n")

	log := logger.FromContext(ctx)
	log.Info().
		Int("categories", len(s.Categories())).
		Int("accounts", len(s.Accounts())).
		Msg("budget set up")
	return nil
}
