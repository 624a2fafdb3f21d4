package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/reconcile/internal/config"
	"github.com/cleared-dev/reconcile/internal/ledger"
	"github.com/cleared-dev/reconcile/internal/ledger/actual"
	"github.com/cleared-dev/reconcile/internal/ledger/memory"
	"github.com/cleared-dev/reconcile/internal/logger"
	"github.com/cleared-dev/reconcile/internal/prompt"
	"github.com/cleared-dev/reconcile/internal/tabula"
)

// envFile is loaded from the working directory when present.
const envFile = ".env"

// app carries what the subcommands share: flags, the loaded config and
// environment, and the collaborators tests may replace.
type app struct {
	configPath string
	verbose    bool

	cfg *config.Config
	env *config.Env

	client    ledger.Client
	prompter  prompt.Prompter
	extractor tabula.Extractor
}

// load runs before every subcommand: it reads the environment, sets up
// logging and loads the config.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadEnv(envFile)
	if err != nil {
		return err
	}
	a.env = env

	level := env.LogLevel
	if a.verbose {
		level = "debug"
	}
	log := logger.New(os.Stderr, level)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx, log))

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	log.Debug().Str("config", cfg.Path).Int("accounts", len(cfg.Accounts)).Int("categories", len(cfg.Categories)).Msg("config loaded")
	return nil
}

// ledgerClient returns the configured backend: the actual-http-api server
// when LEDGER_SERVER_URL is set, otherwise the local budget files.
func (a *app) ledgerClient() ledger.Client {
	if a.client != nil {
		return a.client
	}
	if a.env.Ledger.ServerURL != "" {
		return actual.New(a.env.Ledger.ServerURL, a.env.Ledger.APIKey,
			actual.WithBudgetPassword(a.env.Ledger.BudgetPassword))
	}
	return memory.New(a.cfg.Resolve(a.env.Ledger.DataDir))
}

func (a *app) tableExtractor() tabula.Extractor {
	if a.extractor != nil {
		return a.extractor
	}
	return tabula.NewCommand(a.env.Tabula.Java, a.env.Tabula.Jar)
}

// prompt returns the prompter; assumeYes answers every confirmation.
func (a *app) prompt(assumeYes bool) prompt.Prompter {
	if assumeYes {
		return prompt.Fixed{Answer: true}
	}
	if a.prompter != nil {
		return a.prompter
	}
	return prompt.Huh{Accessible: a.env.Accessible}
}

// withSession opens the budget, runs fn and closes the budget again. The
// budget is closed even when fn fails.
func (a *app) withSession(ctx context.Context, fn func(*ledger.Session) error) (err error) {
	s, err := ledger.Open(ctx, a.ledgerClient(), a.cfg.SyncID)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
