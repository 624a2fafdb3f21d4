package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/reconcile/internal/config"
	"github.com/cleared-dev/reconcile/internal/logger"
	"github.com/cleared-dev/reconcile/internal/model"
	"github.com/cleared-dev/reconcile/internal/rules"
)

const (
	// StartingBalanceCategory categorizes initial balance transactions.
	StartingBalanceCategory = "Starting Balance"
	startingBalancePayee    = "Starting Balance"
	startingBalanceDate     = "2019-01-01"
)

// Session is a snapshot of the ledger indexed by name and id. Mutating
// methods refresh the snapshot once their backend calls complete. A Session
// is not safe for concurrent use.
type Session struct {
	client Client
	syncID string

	accounts       []Account
	accountsByName map[string]Account
	accountsByID   map[string]Account

	groups     []CategoryGroup
	categories []Category
	catByName  map[string]Category
	catByID    map[string]Category

	payees      []Payee
	payeeByName map[string]Payee
	payeeByID   map[string]Payee

	transactions []Transaction
}

// Open initializes the backend for syncID and loads the first snapshot.
func Open(ctx context.Context, client Client, syncID string) (*Session, error) {
	log := logger.FromContext(ctx)
	log.Info().Str("sync_id", syncID).Msg("opening budget")
	if err := client.Init(ctx, syncID); err != nil {
		return nil, fmt.Errorf("opening budget %s: %w", syncID, err)
	}
	s := &Session{client: client, syncID: syncID}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Close shuts the backend down.
func (s *Session) Close(ctx context.Context) error {
	if err := s.client.Shutdown(ctx); err != nil {
		return fmt.Errorf("closing budget %s: %w", s.syncID, err)
	}
	return nil
}

// Refresh re-reads accounts, categories, payees and transactions.
func (s *Session) Refresh(ctx context.Context) error {
	var (
		accounts   []Account
		groups     []CategoryGroup
		categories []Category
		payees     []Payee
		txns       []Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { accounts, err = s.client.Accounts(gctx); return })
	g.Go(func() (err error) { groups, err = s.client.CategoryGroups(gctx); return })
	g.Go(func() (err error) { categories, err = s.client.Categories(gctx); return })
	g.Go(func() (err error) { payees, err = s.client.Payees(gctx); return })
	g.Go(func() (err error) { txns, err = s.client.Transactions(gctx); return })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("refreshing budget: %w", err)
	}

	s.accounts = accounts
	s.accountsByName = make(map[string]Account, len(accounts))
	s.accountsByID = make(map[string]Account, len(accounts))
	for _, a := range accounts {
		s.accountsByName[a.Name] = a
		s.accountsByID[a.ID] = a
	}

	s.groups = groups
	s.categories = categories
	s.catByName = make(map[string]Category, len(categories))
	s.catByID = make(map[string]Category, len(categories))
	for _, c := range categories {
		s.catByName[c.Name] = c
		s.catByID[c.ID] = c
	}

	s.payees = payees
	s.payeeByName = make(map[string]Payee, len(payees))
	s.payeeByID = make(map[string]Payee, len(payees))
	for _, p := range payees {
		s.payeeByName[p.Name] = p
		s.payeeByID[p.ID] = p
	}

	s.transactions = txns
	return nil
}

// Accounts returns the accounts in the snapshot.
func (s *Session) Accounts() []Account {
	return s.accounts
}

// Categories returns the categories in the snapshot.
func (s *Session) Categories() []Category {
	return s.categories
}

// CategoryByName looks a category up by name.
func (s *Session) CategoryByName(name string) (Category, bool) {
	c, ok := s.catByName[name]
	return c, ok
}

// Transactions returns the snapshot's transactions with ids replaced by names.
// Transfers carry the transfer payee's name in Transfer.
func (s *Session) Transactions() []model.LedgerTransaction {
	out := make([]model.LedgerTransaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		lt := model.LedgerTransaction{
			ID: t.ID,
			RawTransaction: model.RawTransaction{
				Date:      t.Date,
				Amount:    t.Amount,
				Notes:     t.Notes,
				Account:   s.accountsByID[t.Account].Name,
				PayeeName: s.payeeByID[t.Payee].Name,
			},
			TransferID: t.TransferID,
			IsParent:   t.IsParent,
		}
		if t.Category != "" {
			lt.Category = s.catByID[t.Category].Name
		}
		if t.TransferID != "" {
			lt.Transfer = lt.PayeeName
		}
		out = append(out, lt)
	}
	return out
}

// DeleteCategories deletes every category and every group except income.
func (s *Session) DeleteCategories(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range s.categories {
		g.Go(func() error { return s.client.DeleteCategory(gctx, c.ID) })
	}
	for _, grp := range s.groups {
		if grp.ID == IncomeGroupID {
			continue
		}
		g.Go(func() error { return s.client.DeleteCategoryGroup(gctx, grp.ID) })
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("deleting categories: %w", err)
	}
	return s.Refresh(ctx)
}

// SetupCategories creates a group per distinct rule group, in order of first
// use, then a category per rule. The Income group maps onto the built-in
// income group and its categories are income categories.
func (s *Session) SetupCategories(ctx context.Context, rs []rules.Rule) error {
	var names []string
	seen := make(map[string]bool)
	for _, r := range rs {
		if !seen[r.Group] {
			seen[r.Group] = true
			names = append(names, r.Group)
		}
	}

	ids := make([]string, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		if name == IncomeGroupName {
			ids[i] = IncomeGroupID
			continue
		}
		g.Go(func() (err error) {
			ids[i], err = s.client.CreateCategoryGroup(gctx, CategoryGroup{Name: name})
			return
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("creating category groups: %w", err)
	}
	groupIDs := make(map[string]string, len(names))
	for i, name := range names {
		groupIDs[name] = ids[i]
	}

	g, gctx = errgroup.WithContext(ctx)
	for _, r := range rs {
		c := Category{Name: r.Name, GroupID: groupIDs[r.Group], IsIncome: r.Group == IncomeGroupName}
		g.Go(func() error {
			_, err := s.client.CreateCategory(gctx, c)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("creating categories: %w", err)
	}
	return s.Refresh(ctx)
}

// DeleteAccounts deletes every account.
func (s *Session) DeleteAccounts(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, a := range s.accounts {
		g.Go(func() error { return s.client.DeleteAccount(gctx, a.ID) })
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("deleting accounts: %w", err)
	}
	return s.Refresh(ctx)
}

// SetupAccounts creates the configured accounts and books one Starting
// Balance transaction for each account with an initial balance. The Starting
// Balance category must already exist when any account needs it.
func (s *Session) SetupAccounts(ctx context.Context, accts []config.Account) error {
	var startCat Category
	for _, a := range accts {
		if a.InitialBalance == nil {
			continue
		}
		c, ok := s.catByName[StartingBalanceCategory]
		if !ok {
			return &UnknownReferenceError{Kind: "category", Name: StartingBalanceCategory}
		}
		startCat = c
		break
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, a := range accts {
		acct := Account{Name: a.Name, Type: a.Type, OffBudget: a.OffBudget}
		g.Go(func() error {
			_, err := s.client.CreateAccount(gctx, acct)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("creating accounts: %w", err)
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}

	g, gctx = errgroup.WithContext(ctx)
	for _, a := range accts {
		if a.InitialBalance == nil {
			continue
		}
		acct, ok := s.accountsByName[a.Name]
		if !ok {
			return &UnknownReferenceError{Kind: "account", Name: a.Name}
		}
		txn := Transaction{
			Account:   acct.ID,
			Date:      startingBalanceDate,
			Amount:    a.InitialBalance.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
			PayeeName: startingBalancePayee,
			Category:  startCat.ID,
		}
		g.Go(func() error { return s.client.ImportTransactions(gctx, acct.ID, []Transaction{txn}) })
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("importing starting balances: %w", err)
	}
	return s.Refresh(ctx)
}

// ImportTransactions imports records grouped by account name. Every name is
// translated before the first backend call, so an unknown account, category
// or transfer payee fails the batch without importing anything.
func (s *Session) ImportTransactions(ctx context.Context, batch map[string][]model.RawTransaction) error {
	type job struct {
		accountID string
		txns      []Transaction
	}
	var jobs []job
	for name, records := range batch {
		if len(records) == 0 {
			continue
		}
		acct, ok := s.accountsByName[name]
		if !ok {
			return &UnknownReferenceError{Kind: "account", Name: name}
		}
		txns := make([]Transaction, len(records))
		for i, r := range records {
			t, err := s.toLedger(r, acct.ID)
			if err != nil {
				return err
			}
			txns[i] = t
		}
		jobs = append(jobs, job{accountID: acct.ID, txns: txns})
	}

	log := logger.FromContext(ctx)
	g, gctx := errgroup.WithContext(ctx)
	for _, j := range jobs {
		g.Go(func() error {
			log.Debug().Str("account", s.accountsByID[j.accountID].Name).Int("count", len(j.txns)).Msg("importing transactions")
			return s.client.ImportTransactions(gctx, j.accountID, j.txns)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("importing transactions: %w", err)
	}
	return s.Refresh(ctx)
}

// toLedger translates a record's names into ids.
func (s *Session) toLedger(r model.RawTransaction, accountID string) (Transaction, error) {
	t := Transaction{
		Account:   accountID,
		Date:      r.Date,
		Amount:    r.Amount,
		PayeeName: r.PayeeName,
		Notes:     r.Notes,
	}
	if r.Category != "" {
		c, ok := s.catByName[r.Category]
		if !ok {
			return Transaction{}, &UnknownReferenceError{Kind: "category", Name: r.Category}
		}
		t.Category = c.ID
	}
	if r.Transfer != "" {
		p, ok := s.payeeByName[r.Transfer]
		if !ok {
			return Transaction{}, &UnknownReferenceError{Kind: "payee", Name: r.Transfer}
		}
		t.Payee = p.ID
		t.PayeeName = ""
	}
	if t.Payee == "" && strings.TrimSpace(t.PayeeName) == "" {
		return Transaction{}, fmt.Errorf("%s transaction on %s: %w", s.accountsByID[accountID].Name, r.Date, ErrNoPayee)
	}
	return t, nil
}

// UpdateCategories sets categories by transaction id. Category names are
// translated before any update is sent.
func (s *Session) UpdateCategories(ctx context.Context, updates map[string]string) error {
	patches := make(map[string]TransactionPatch, len(updates))
	for id, name := range updates {
		c, ok := s.catByName[name]
		if !ok {
			return &UnknownReferenceError{Kind: "category", Name: name}
		}
		patches[id] = TransactionPatch{Category: c.ID}
	}

	g, gctx := errgroup.WithContext(ctx)
	for id, patch := range patches {
		g.Go(func() error { return s.client.UpdateTransaction(gctx, id, patch) })
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("updating transactions: %w", err)
	}
	return s.Refresh(ctx)
}

// DeleteTransactions deletes every transaction in the snapshot.
func (s *Session) DeleteTransactions(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range s.transactions {
		g.Go(func() error { return s.client.DeleteTransaction(gctx, t.ID) })
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("deleting transactions: %w", err)
	}
	return s.Refresh(ctx)
}
