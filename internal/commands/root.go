package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/reconcile/internal/buildinfo"
	"github.com/cleared-dev/reconcile/internal/ledger"
	"github.com/cleared-dev/reconcile/internal/prompt"
	"github.com/cleared-dev/reconcile/internal/tabula"
)

// Option customizes the root command.
type Option func(*app)

// WithClient makes every command use client instead of the backend chosen
// from the environment.
func WithClient(client ledger.Client) Option {
	return func(a *app) { a.client = client }
}

// WithPrompter replaces the terminal prompts.
func WithPrompter(p prompt.Prompter) Option {
	return func(a *app) { a.prompter = p }
}

// WithExtractor replaces the tabula-java extractor used by PDF parsers.
func WithExtractor(ex tabula.Extractor) Option {
	return func(a *app) { a.extractor = ex }
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{}
	for _, opt := range opts {
		opt(a)
	}

	rootCmd := &cobra.Command{
		Use:     "reconcile",
		Short:   "Import bank statements into a budget and keep its categories in order",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "the budget config file to use (.yaml, .yml or .json)")
	_ = rootCmd.MarkPersistentFlagRequired("config")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output")

	rootCmd.AddCommand(
		newSetupCommand(a),
		newImportCommand(a),
		newDeleteCommand(a),
		newCategorizeCommand(a),
		newExportCommand(a),
	)

	return rootCmd
}
