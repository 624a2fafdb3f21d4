// Package ledger talks to the budgeting backend through Client and keeps a
// name-indexed snapshot of it in Session.
package ledger

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockgen -source=client.go -destination=client_mock.go -package=ledger

// IncomeGroupID is the id of the built-in income category group. It exists in
// every budget and is never deleted.
const IncomeGroupID = "2E1F5BDB-209B-43F9-AF2C-3CE28E380C00"

// IncomeGroupName is the config group name that maps to IncomeGroupID.
const IncomeGroupName = "Income"

// Account is a ledger account.
type Account struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"`
	OffBudget bool   `json:"offbudget"`
	Closed    bool   `json:"closed,omitempty"`
}

// CategoryGroup groups categories.
type CategoryGroup struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	IsIncome bool   `json:"is_income,omitempty"`
}

// Category is a ledger category.
type Category struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	GroupID  string `json:"group_id"`
	IsIncome bool   `json:"is_income,omitempty"`
}

// Payee is a ledger payee. Transfer payees carry the account they transfer to.
type Payee struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name"`
	TransferAccount string `json:"transfer_acct,omitempty"`
}

// Transaction is a ledger transaction with ids for account, payee and
// category. PayeeName is only used on import, where the backend resolves or
// creates the payee.
type Transaction struct {
	ID         string `json:"id,omitempty"`
	Account    string `json:"account"`
	Date       string `json:"date"`
	Amount     int64  `json:"amount"`
	Payee      string `json:"payee,omitempty"`
	PayeeName  string `json:"payee_name,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Category   string `json:"category,omitempty"`
	TransferID string `json:"transfer_id,omitempty"`
	IsParent   bool   `json:"is_parent,omitempty"`
}

// TransactionPatch holds the fields UpdateTransaction changes.
type TransactionPatch struct {
	Category string `json:"category"`
}

// Client is the budgeting backend.
type Client interface {
	Init(ctx context.Context, syncID string) error
	Shutdown(ctx context.Context) error

	Accounts(ctx context.Context) ([]Account, error)
	CreateAccount(ctx context.Context, a Account) (string, error)
	DeleteAccount(ctx context.Context, id string) error

	CategoryGroups(ctx context.Context) ([]CategoryGroup, error)
	CreateCategoryGroup(ctx context.Context, g CategoryGroup) (string, error)
	DeleteCategoryGroup(ctx context.Context, id string) error

	Categories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c Category) (string, error)
	DeleteCategory(ctx context.Context, id string) error

	Payees(ctx context.Context) ([]Payee, error)

	Transactions(ctx context.Context) ([]Transaction, error)
	ImportTransactions(ctx context.Context, accountID string, txns []Transaction) error
	UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) error
	DeleteTransaction(ctx context.Context, id string) error
}

// ErrNoPayee is returned for a transaction with neither a payee id nor a
// payee name.
var ErrNoPayee = errors.New("transaction has no payee")

// UnknownReferenceError is returned when a name has no ledger counterpart.
type UnknownReferenceError struct {
	Kind string // account, category or payee
	Name string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}
