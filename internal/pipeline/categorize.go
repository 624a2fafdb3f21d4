package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/cleared-dev/reconcile/internal/exchange"
	"github.com/cleared-dev/reconcile/internal/ledger"
	"github.com/cleared-dev/reconcile/internal/logger"
	"github.com/cleared-dev/reconcile/internal/model"
	"github.com/cleared-dev/reconcile/internal/prompt"
	"github.com/cleared-dev/reconcile/internal/report"
	"github.com/cleared-dev/reconcile/internal/rules"
)

// Ledger is the part of a ledger session the categorize workflows use.
type Ledger interface {
	Transactions() []model.LedgerTransaction
	CategoryByName(name string) (ledger.Category, bool)
	UpdateCategories(ctx context.Context, updates map[string]string) error
}

var _ Ledger = (*ledger.Session)(nil)

// RuleChanges re-applies rs to the categorizable transactions and returns
// those whose category would change. Transactions no rule matches keep their
// category.
func RuleChanges(txns []model.LedgerTransaction, rs *rules.Set) []report.Change {
	var changes []report.Change
	for _, t := range txns {
		if !t.Categorizable() {
			continue
		}
		r, ok := rs.Find(t.RawTransaction)
		if !ok || r.Name == t.Category {
			continue
		}
		changes = append(changes, report.Change{Txn: t, Category: r.Name})
	}
	return changes
}

// FileChanges looks up every uncategorized, categorizable transaction in the
// reference records by MatchKey. Reference records without a category are
// ignored and the last record for a key wins.
func FileChanges(txns []model.LedgerTransaction, reference []model.RawTransaction) []report.Change {
	byKey := make(map[string]string, len(reference))
	for _, r := range reference {
		if r.Category != "" {
			byKey[r.MatchKey()] = r.Category
		}
	}

	var changes []report.Change
	for _, t := range txns {
		if t.Category != "" || !t.Categorizable() {
			continue
		}
		if c, ok := byKey[t.MatchKey()]; ok {
			changes = append(changes, report.Change{Txn: t, Category: c})
		}
	}
	return changes
}

// Categorizer updates ledger categories after showing the changes and
// asking for confirmation.
type Categorizer struct {
	ledger Ledger
	prompt prompt.Prompter
	out    io.Writer
}

// NewCategorizer creates a Categorizer writing its reports to out.
func NewCategorizer(l Ledger, p prompt.Prompter, out io.Writer) *Categorizer {
	return &Categorizer{ledger: l, prompt: p, out: out}
}

// ByRules re-categorizes ledger transactions with rs. It returns the number
// of transactions updated.
func (c *Categorizer) ByRules(ctx context.Context, rs *rules.Set) (int, error) {
	changes := RuleChanges(c.ledger.Transactions(), rs)
	fmt.Fprintf(c.out, "Categorized %d transactions\n", len(changes))
	if len(changes) == 0 {
		return 0, nil
	}
	if err := report.Diff(c.out, changes); err != nil {
		return 0, err
	}
	return c.apply(ctx, changes)
}

// FromFile categorizes uncategorized ledger transactions with the categories
// of matching records in the file at path. Only categories the ledger knows
// are applied.
func (c *Categorizer) FromFile(ctx context.Context, path string) (int, error) {
	log := logger.FromContext(ctx)
	log.Info().Str("file", path).Msg("reading reference transactions")
	reference, err := exchange.ReadFile(path)
	if err != nil {
		return 0, err
	}

	found := FileChanges(c.ledger.Transactions(), reference)
	var known []report.Change
	for _, ch := range found {
		if _, ok := c.ledger.CategoryByName(ch.Category); ok {
			known = append(known, ch)
		}
	}

	fmt.Fprintf(c.out, "Found %d transactions in file, out of which %d have known categories\n", len(found), len(known))
	if len(found) > 0 {
		if err := report.Found(c.out, found); err != nil {
			return 0, err
		}
	}
	if len(known) == 0 {
		return 0, nil
	}
	return c.apply(ctx, known)
}

func (c *Categorizer) apply(ctx context.Context, changes []report.Change) (int, error) {
	ok, err := c.prompt.Confirm(ctx, "Continue?")
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	updates := make(map[string]string, len(changes))
	for _, ch := range changes {
		updates[ch.Txn.ID] = ch.Category
	}
	if err := c.ledger.UpdateCategories(ctx, updates); err != nil {
		return 0, err
	}
	fmt.Fprintf(c.out, "Updated %s\n", report.Count(len(updates), "transaction"))
	return len(updates), nil
}
