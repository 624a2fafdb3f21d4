package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/reconcile/internal/config"
	"github.com/cleared-dev/reconcile/internal/importer"
	"github.com/cleared-dev/reconcile/internal/logger"
	"github.com/cleared-dev/reconcile/internal/model"
	"github.com/cleared-dev/reconcile/internal/rules"
)

// Options narrow an import.
type Options struct {
	Month   string // see MonthFilter
	Account string // only import this account when set
}

// Result is one account's records, ready for the ledger.
type Result struct {
	Account      string
	Transactions []model.RawTransaction
}

// Batch holds the imported accounts in config order.
type Batch []Result

// ByAccount groups the batch by account name.
func (b Batch) ByAccount() map[string][]model.RawTransaction {
	m := make(map[string][]model.RawTransaction, len(b))
	for _, r := range b {
		m[r.Account] = append(m[r.Account], r.Transactions...)
	}
	return m
}

// All flattens the batch in account order.
func (b Batch) All() []model.RawTransaction {
	var all []model.RawTransaction
	for _, r := range b {
		all = append(all, r.Transactions...)
	}
	return all
}

// Importer parses the statements of configured accounts.
type Importer struct {
	registry *importer.Registry
	rules    *rules.Set
}

// NewImporter creates an Importer that parses with registry and categorizes
// with rs.
func NewImporter(registry *importer.Registry, rs *rules.Set) *Importer {
	return &Importer{registry: registry, rules: rs}
}

// Import parses every account that has a folder. Accounts are parsed
// concurrently and any failure aborts the import. An account whose parser is
// not registered is logged and left out of the batch.
func (im *Importer) Import(ctx context.Context, cfg *config.Config, opts Options) (Batch, error) {
	month, err := MonthFilter(opts.Month)
	if err != nil {
		return nil, err
	}
	if opts.Account != "" {
		if _, ok := cfg.Account(opts.Account); !ok {
			return nil, fmt.Errorf("account %q is not configured", opts.Account)
		}
	}

	log := logger.FromContext(ctx)
	results := make([]*Result, len(cfg.Accounts))
	g, gctx := errgroup.WithContext(ctx)
	for i, acct := range cfg.Accounts {
		if acct.Folder == "" || (opts.Account != "" && acct.Name != opts.Account) {
			continue
		}
		p, err := im.registry.Lookup(acct.Parser)
		if err != nil {
			log.Error().Err(err).Str("account", acct.Name).Msg("skipping account")
			continue
		}
		g.Go(func() error {
			txns, err := im.account(gctx, cfg.Resolve(acct.Folder), acct, p, month)
			if err != nil {
				return fmt.Errorf("importing %s: %w", acct.Name, err)
			}
			results[i] = &Result{Account: acct.Name, Transactions: txns}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var batch Batch
	for _, r := range results {
		if r != nil {
			batch = append(batch, *r)
		}
	}
	return batch, nil
}

// account runs one account's files through parse, dedupe, filter, transform
// and categorize.
func (im *Importer) account(ctx context.Context, path string, acct config.Account, p importer.Parser, month rules.Predicate) ([]model.RawTransaction, error) {
	filter, err := acct.Filter.Compile()
	if err != nil {
		return nil, fmt.Errorf("compiling filter: %w", err)
	}
	keep := and(month, filter)
	transform := AccountTransform(acct.Transform)

	files, err := importer.Discover(path)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).With().Str("account", acct.Name).Str("parser", p.Name()).Logger()
	parsed := make([][]model.RawTransaction, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			txns, err := p.Parse(gctx, f)
			if err != nil {
				return err
			}
			log.Debug().Str("file", f).Int("count", len(txns)).Msg("parsed statement")
			parsed[i] = txns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.RawTransaction
	for _, txns := range parsed {
		all = append(all, txns...)
	}
	unique := Dedupe(all)

	kept := make([]model.RawTransaction, 0, len(unique))
	for _, t := range unique {
		// Filters and rules may match on the account, so it is set first.
		t.Account = acct.Name
		if !keep(t) {
			continue
		}
		kept = append(kept, transform(t))
	}
	out := im.rules.Apply(kept)

	log.Info().
		Int("files", len(files)).
		Int("parsed", len(all)).
		Int("unique", len(unique)).
		Int("count", len(out)).
		Int("rules", im.rules.Len()).
		Msg("account parsed")
	return out, nil
}
