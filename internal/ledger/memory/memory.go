// Package memory is an in-process ledger backend persisted as one JSON file
// per budget.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/cleared-dev/reconcile/internal/ledger"
)

// budget is the persisted state.
type budget struct {
	Accounts     []ledger.Account       `json:"accounts"`
	Groups       []ledger.CategoryGroup `json:"category_groups"`
	Categories   []ledger.Category      `json:"categories"`
	Payees       []ledger.Payee         `json:"payees"`
	Transactions []ledger.Transaction   `json:"transactions"`
}

func newBudget() *budget {
	return &budget{
		Groups: []ledger.CategoryGroup{{ID: ledger.IncomeGroupID, Name: ledger.IncomeGroupName, IsIncome: true}},
	}
}

// Client is a goroutine-safe ledger.Client holding the budget in memory.
type Client struct {
	dataDir string
	newID   func() string

	mu     sync.Mutex
	path   string
	budget *budget
}

var _ ledger.Client = (*Client)(nil)

// New creates a client persisting budgets in dataDir. An empty dataDir keeps
// budgets in memory only.
func New(dataDir string) *Client {
	return &Client{
		dataDir: dataDir,
		newID:   func() string { return uuid.NewString() },
		budget:  newBudget(),
	}
}

// ErrNotFound is returned for ids the budget does not contain.
var ErrNotFound = errors.New("not found")

// Init loads <dataDir>/<syncID>.json when it exists and starts an empty
// budget otherwise.
func (c *Client) Init(_ context.Context, syncID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.budget = newBudget()
	c.path = ""
	if c.dataDir == "" {
		return nil
	}
	c.path = filepath.Join(c.dataDir, syncID+".json")

	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading budget: %w", err)
	}
	var b budget
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("parsing budget %s: %w", c.path, err)
	}
	if !slices.ContainsFunc(b.Groups, func(g ledger.CategoryGroup) bool { return g.ID == ledger.IncomeGroupID }) {
		b.Groups = append(newBudget().Groups, b.Groups...)
	}
	c.budget = &b
	return nil
}

// Shutdown writes the budget back to its file.
func (c *Client) Shutdown(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	data, err := json.MarshalIndent(c.budget, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling budget: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing budget: %w", err)
	}
	return nil
}

// Accounts returns all accounts.
func (c *Client) Accounts(_ context.Context) ([]ledger.Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.budget.Accounts), nil
}

// CreateAccount adds an account and its transfer payee.
func (c *Client) CreateAccount(_ context.Context, a ledger.Account) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if a.Name == "" {
		return "", errors.New("account name is required")
	}
	a.ID = c.newID()
	c.budget.Accounts = append(c.budget.Accounts, a)
	c.budget.Payees = append(c.budget.Payees, ledger.Payee{ID: c.newID(), Name: a.Name, TransferAccount: a.ID})
	return a.ID, nil
}

// DeleteAccount removes an account with its transactions and transfer payee.
func (c *Client) DeleteAccount(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.budget.Accounts)
	c.budget.Accounts = slices.DeleteFunc(c.budget.Accounts, func(a ledger.Account) bool { return a.ID == id })
	if len(c.budget.Accounts) == n {
		return fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	c.budget.Payees = slices.DeleteFunc(c.budget.Payees, func(p ledger.Payee) bool { return p.TransferAccount == id })
	c.budget.Transactions = slices.DeleteFunc(c.budget.Transactions, func(t ledger.Transaction) bool { return t.Account == id })
	return nil
}

// CategoryGroups returns all category groups.
func (c *Client) CategoryGroups(_ context.Context) ([]ledger.CategoryGroup, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.budget.Groups), nil
}

// CreateCategoryGroup adds a category group.
func (c *Client) CreateCategoryGroup(_ context.Context, g ledger.CategoryGroup) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g.ID = c.newID()
	c.budget.Groups = append(c.budget.Groups, g)
	return g.ID, nil
}

// DeleteCategoryGroup removes a group and its categories. The income group
// cannot be deleted.
func (c *Client) DeleteCategoryGroup(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id == ledger.IncomeGroupID {
		return errors.New("the income category group cannot be deleted")
	}
	n := len(c.budget.Groups)
	c.budget.Groups = slices.DeleteFunc(c.budget.Groups, func(g ledger.CategoryGroup) bool { return g.ID == id })
	if len(c.budget.Groups) == n {
		return fmt.Errorf("category group %s: %w", id, ErrNotFound)
	}
	for _, cat := range c.budget.Categories {
		if cat.GroupID == id {
			c.clearCategory(cat.ID)
		}
	}
	c.budget.Categories = slices.DeleteFunc(c.budget.Categories, func(cat ledger.Category) bool { return cat.GroupID == id })
	return nil
}

// Categories returns all categories.
func (c *Client) Categories(_ context.Context) ([]ledger.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.budget.Categories), nil
}

// CreateCategory adds a category to an existing group.
func (c *Client) CreateCategory(_ context.Context, cat ledger.Category) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !slices.ContainsFunc(c.budget.Groups, func(g ledger.CategoryGroup) bool { return g.ID == cat.GroupID }) {
		return "", fmt.Errorf("category group %s: %w", cat.GroupID, ErrNotFound)
	}
	cat.ID = c.newID()
	c.budget.Categories = append(c.budget.Categories, cat)
	return cat.ID, nil
}

// DeleteCategory removes a category, uncategorizing its transactions. An
// unknown id is ignored since deleting a group takes its categories along.
func (c *Client) DeleteCategory(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.budget.Categories = slices.DeleteFunc(c.budget.Categories, func(cat ledger.Category) bool { return cat.ID == id })
	c.clearCategory(id)
	return nil
}

func (c *Client) clearCategory(id string) {
	for i := range c.budget.Transactions {
		if c.budget.Transactions[i].Category == id {
			c.budget.Transactions[i].Category = ""
		}
	}
}

// Payees returns all payees.
func (c *Client) Payees(_ context.Context) ([]ledger.Payee, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.budget.Payees), nil
}

// Transactions returns all transactions.
func (c *Client) Transactions(_ context.Context) ([]ledger.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.budget.Transactions), nil
}

// ImportTransactions adds transactions to an account. Payee names are
// resolved or created. A transfer payee books the counter transaction in the
// target account. A transaction equal in date, amount, payee and notes to one
// already in the account is skipped, so importing a statement twice is
// harmless. The batch is checked as a whole first; when any transaction is
// rejected nothing is stored.
func (c *Client) ImportTransactions(_ context.Context, accountID string, txns []ledger.Transaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.account(accountID); !ok {
		return fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}
	for _, t := range txns {
		if err := c.checkImport(t); err != nil {
			return err
		}
	}

	for _, t := range txns {
		t.Account = accountID
		t.ID = ""
		t.TransferID = ""
		if t.Payee == "" {
			t.Payee = c.payeeFor(t.PayeeName)
		}
		t.PayeeName = ""
		if c.duplicate(t) {
			continue
		}

		payee, _ := c.payee(t.Payee)
		t.ID = c.newID()
		if payee.TransferAccount == "" {
			c.budget.Transactions = append(c.budget.Transactions, t)
			continue
		}

		// Transfers between accounts carry no category.
		t.Category = ""
		counter := ledger.Transaction{
			ID:         c.newID(),
			Account:    payee.TransferAccount,
			Date:       t.Date,
			Amount:     -t.Amount,
			Payee:      c.transferPayee(accountID),
			Notes:      t.Notes,
			TransferID: t.ID,
		}
		t.TransferID = counter.ID
		c.budget.Transactions = append(c.budget.Transactions, t, counter)
	}
	return nil
}

// checkImport reports why t cannot be imported, without changing the budget.
func (c *Client) checkImport(t ledger.Transaction) error {
	switch {
	case t.Payee != "":
		if _, ok := c.payee(t.Payee); !ok {
			return fmt.Errorf("payee %s: %w", t.Payee, ErrNotFound)
		}
	case strings.TrimSpace(t.PayeeName) == "":
		return fmt.Errorf("transaction on %s: %w", t.Date, ledger.ErrNoPayee)
	}
	if t.Category != "" && !slices.ContainsFunc(c.budget.Categories, func(cat ledger.Category) bool { return cat.ID == t.Category }) {
		return fmt.Errorf("category %s: %w", t.Category, ErrNotFound)
	}
	return nil
}

// UpdateTransaction applies patch to a transaction.
func (c *Client) UpdateTransaction(_ context.Context, id string, patch ledger.TransactionPatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if patch.Category != "" && !slices.ContainsFunc(c.budget.Categories, func(cat ledger.Category) bool { return cat.ID == patch.Category }) {
		return fmt.Errorf("category %s: %w", patch.Category, ErrNotFound)
	}
	i := slices.IndexFunc(c.budget.Transactions, func(t ledger.Transaction) bool { return t.ID == id })
	if i < 0 {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	c.budget.Transactions[i].Category = patch.Category
	return nil
}

// DeleteTransaction removes a transaction and its transfer counterpart. An
// unknown id is ignored since the counterpart may already be gone.
func (c *Client) DeleteTransaction(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.budget.Transactions = slices.DeleteFunc(c.budget.Transactions, func(t ledger.Transaction) bool {
		return t.ID == id || t.TransferID == id
	})
	return nil
}

func (c *Client) account(id string) (ledger.Account, bool) {
	i := slices.IndexFunc(c.budget.Accounts, func(a ledger.Account) bool { return a.ID == id })
	if i < 0 {
		return ledger.Account{}, false
	}
	return c.budget.Accounts[i], true
}

func (c *Client) payee(id string) (ledger.Payee, bool) {
	i := slices.IndexFunc(c.budget.Payees, func(p ledger.Payee) bool { return p.ID == id })
	if i < 0 {
		return ledger.Payee{}, false
	}
	return c.budget.Payees[i], true
}

// payeeFor returns the id of the plain payee named name, creating it.
func (c *Client) payeeFor(name string) string {
	for _, p := range c.budget.Payees {
		if p.Name == name && p.TransferAccount == "" {
			return p.ID
		}
	}
	p := ledger.Payee{ID: c.newID(), Name: name}
	c.budget.Payees = append(c.budget.Payees, p)
	return p.ID
}

func (c *Client) transferPayee(accountID string) string {
	for _, p := range c.budget.Payees {
		if p.TransferAccount == accountID {
			return p.ID
		}
	}
	return ""
}

func (c *Client) duplicate(t ledger.Transaction) bool {
	return slices.ContainsFunc(c.budget.Transactions, func(e ledger.Transaction) bool {
		return e.Account == t.Account && e.Date == t.Date && e.Amount == t.Amount &&
			e.Payee == t.Payee && e.Notes == t.Notes
	})
}
