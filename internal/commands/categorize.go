package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/reconcile/internal/ledger"
	"github.com/cleared-dev/reconcile/internal/pipeline"
	"github.com/cleared-dev/reconcile/internal/rules"
)

func newCategorizeCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "categorize [file]",
		Short: "Categorize the budget's transactions",
		Long: "Without a file, re-applies the config's rules to the budget's transactions.\n" +
			"With a .csv or .json file, gives uncategorized transactions the category of\n" +
			"the matching transaction in the file. Changes are shown before they are applied.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := rules.Compile(a.cfg.Categories)
			if err != nil {
				return err
			}
			return a.withSession(cmd.Context(), func(s *ledger.Session) error {
				c := pipeline.NewCategorizer(s, a.prompt(yes), cmd.OutOrStdout())
				if len(args) == 0 {
					printf(cmd, "Specify a file to import categories from a file. Trying categorization using the rules from the config file\n")
					_, err := c.ByRules(cmd.Context(), rs)
					return err
				}
				_, err := c.FromFile(cmd.Context(), args[0])
				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "apply the changes without asking")

	return cmd
}
