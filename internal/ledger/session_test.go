package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cleared-dev/reconcile/internal/config"
	"github.com/cleared-dev/reconcile/internal/ledger"
	"github.com/cleared-dev/reconcile/internal/ledger/memory"
	"github.com/cleared-dev/reconcile/internal/model"
	"github.com/cleared-dev/reconcile/internal/rules"
)

var budgetRules = []rules.Rule{
	{Name: "Salary", Group: "Income", Match: &rules.Match{Payee: "ACME"}},
	{Name: "Starting Balance", Group: "Income"},
	{Name: "Groceries", Group: "Food"},
	{Name: "Eating Out", Group: "Food"},
	{Name: "Rent", Group: "Housing"},
}

func openSession(t *testing.T) *ledger.Session {
	t.Helper()
	s, err := ledger.Open(context.Background(), memory.New(""), "test")
	require.NoError(t, err)
	return s
}

func setup(t *testing.T, accts ...config.Account) *ledger.Session {
	t.Helper()
	ctx := context.Background()
	s := openSession(t)
	require.NoError(t, s.SetupCategories(ctx, budgetRules))
	require.NoError(t, s.SetupAccounts(ctx, accts))
	return s
}

func TestSetupCategories(t *testing.T) {
	s := setup(t)

	require.Len(t, s.Categories(), 5)
	salary, ok := s.CategoryByName("Salary")
	require.True(t, ok)
	assert.Equal(t, ledger.IncomeGroupID, salary.GroupID)
	assert.True(t, salary.IsIncome)

	groceries, _ := s.CategoryByName("Groceries")
	eatingOut, _ := s.CategoryByName("Eating Out")
	rent, _ := s.CategoryByName("Rent")
	assert.Equal(t, groceries.GroupID, eatingOut.GroupID)
	assert.NotEqual(t, groceries.GroupID, rent.GroupID)
	assert.False(t, groceries.IsIncome)
}

func TestDeleteCategories_KeepsIncomeGroup(t *testing.T) {
	ctx := context.Background()
	client := memory.New("")
	s, err := ledger.Open(ctx, client, "test")
	require.NoError(t, err)
	require.NoError(t, s.SetupCategories(ctx, budgetRules))

	require.NoError(t, s.DeleteCategories(ctx))
	assert.Empty(t, s.Categories())

	groups, err := client.CategoryGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, ledger.IncomeGroupID, groups[0].ID)
}

func TestSetupAccounts_StartingBalance(t *testing.T) {
	s := setup(t,
		config.Account{Name: "ZKB", Type: "checking", InitialBalance: &rules.Amount{Decimal: decimal.RequireFromString("1234.565")}},
		config.Account{Name: "House", Type: "mortgage", OffBudget: true},
	)

	require.Len(t, s.Accounts(), 2)
	var house ledger.Account
	for _, a := range s.Accounts() {
		if a.Name == "House" {
			house = a
		}
	}
	assert.True(t, house.OffBudget)

	txns := s.Transactions()
	require.Len(t, txns, 1)
	assert.Equal(t, "ZKB", txns[0].Account)
	assert.Equal(t, "2019-01-01", txns[0].Date)
	assert.Equal(t, int64(123457), txns[0].Amount)
	assert.Equal(t, "Starting Balance", txns[0].PayeeName)
	assert.Equal(t, "Starting Balance", txns[0].Category)
}

func TestSetupAccounts_NeedsStartingBalanceCategory(t *testing.T) {
	s := openSession(t)
	err := s.SetupAccounts(context.Background(), []config.Account{
		{Name: "ZKB", Type: "checking", InitialBalance: &rules.Amount{Decimal: decimal.NewFromInt(10)}},
	})

	var ure *ledger.UnknownReferenceError
	require.True(t, errors.As(err, &ure))
	assert.Equal(t, "category", ure.Kind)
	assert.Empty(t, s.Accounts(), "nothing is created")
}

func TestImportTransactions(t *testing.T) {
	ctx := context.Background()
	s := setup(t, config.Account{Name: "ZKB", Type: "checking"}, config.Account{Name: "Savings", Type: "savings"})

	err := s.ImportTransactions(ctx, map[string][]model.RawTransaction{
		"ZKB": {
			{Date: "2024-01-02", PayeeName: "ACME", Amount: 500000, Category: "Salary"},
			{Date: "2024-01-03", PayeeName: "Migros", Amount: -4520, Notes: "card"},
			{Date: "2024-01-04", PayeeName: "Move to savings", Amount: -100000, Transfer: "Savings"},
		},
		"Savings": nil,
	})
	require.NoError(t, err)

	byPayee := make(map[string]model.LedgerTransaction)
	for _, txn := range s.Transactions() {
		byPayee[txn.Account+"/"+txn.PayeeName] = txn
	}
	require.Len(t, byPayee, 4)

	assert.Equal(t, "Salary", byPayee["ZKB/ACME"].Category)
	assert.Equal(t, "card", byPayee["ZKB/Migros"].Notes)
	assert.True(t, byPayee["ZKB/Migros"].Categorizable())

	out := byPayee["ZKB/Savings"]
	assert.Equal(t, "Savings", out.Transfer)
	assert.False(t, out.Categorizable())
	in := byPayee["Savings/ZKB"]
	assert.Equal(t, int64(100000), in.Amount)
	assert.Equal(t, "ZKB", in.Transfer)
}

func TestImportTransactions_UnknownReferenceFailsWholeBatch(t *testing.T) {
	tests := []struct {
		name  string
		batch map[string][]model.RawTransaction
		kind  string
	}{
		{"account", map[string][]model.RawTransaction{"DKB": {{Date: "2024-01-01", PayeeName: "x", Amount: 1}}}, "account"},
		{"category", map[string][]model.RawTransaction{"ZKB": {
			{Date: "2024-01-01", PayeeName: "x", Amount: 1},
			{Date: "2024-01-02", PayeeName: "y", Amount: 2, Category: "Travel"},
		}}, "category"},
		{"transfer", map[string][]model.RawTransaction{"ZKB": {{Date: "2024-01-01", PayeeName: "x", Amount: 1, Transfer: "Nowhere"}}}, "payee"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setup(t, config.Account{Name: "ZKB", Type: "checking"})
			err := s.ImportTransactions(context.Background(), tt.batch)

			var ure *ledger.UnknownReferenceError
			require.True(t, errors.As(err, &ure))
			assert.Equal(t, tt.kind, ure.Kind)
			assert.Empty(t, s.Transactions())
		})
	}
}

func TestImportTransactions_EmptyPayeeFailsWholeBatch(t *testing.T) {
	s := setup(t, config.Account{Name: "ZKB", Type: "checking"})

	err := s.ImportTransactions(context.Background(), map[string][]model.RawTransaction{"ZKB": {
		{Date: "2024-01-01", PayeeName: "Migros", Amount: -500},
		{Date: "2024-01-02", PayeeName: "", Amount: -700},
	}})

	require.ErrorIs(t, err, ledger.ErrNoPayee)
	assert.Empty(t, s.Transactions())
}

func TestUpdateCategories(t *testing.T) {
	ctx := context.Background()
	s := setup(t, config.Account{Name: "ZKB", Type: "checking"})
	require.NoError(t, s.ImportTransactions(ctx, map[string][]model.RawTransaction{
		"ZKB": {{Date: "2024-01-03", PayeeName: "Migros", Amount: -4520}},
	}))
	id := s.Transactions()[0].ID

	err := s.UpdateCategories(ctx, map[string]string{id: "Travel"})
	var ure *ledger.UnknownReferenceError
	require.True(t, errors.As(err, &ure))

	require.NoError(t, s.UpdateCategories(ctx, map[string]string{id: "Groceries"}))
	assert.Equal(t, "Groceries", s.Transactions()[0].Category)
}

func TestDeleteTransactions(t *testing.T) {
	ctx := context.Background()
	s := setup(t, config.Account{Name: "ZKB", Type: "checking"}, config.Account{Name: "Savings", Type: "savings"})
	require.NoError(t, s.ImportTransactions(ctx, map[string][]model.RawTransaction{
		"ZKB": {
			{Date: "2024-01-03", PayeeName: "Migros", Amount: -4520},
			{Date: "2024-01-04", PayeeName: "x", Amount: -100, Transfer: "Savings"},
		},
	}))
	require.Len(t, s.Transactions(), 3)

	require.NoError(t, s.DeleteTransactions(ctx))
	assert.Empty(t, s.Transactions())
}

func TestDeleteAccounts(t *testing.T) {
	ctx := context.Background()
	s := setup(t, config.Account{Name: "ZKB", Type: "checking"})
	require.NoError(t, s.DeleteAccounts(ctx))
	assert.Empty(t, s.Accounts())
}

func TestOpen_InitFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := ledger.NewMockClient(ctrl)
	client.EXPECT().Init(gomock.Any(), "sync").Return(&model.ExternalToolError{Tool: "ledger", Op: "download budget", Err: errors.New("401")})

	_, err := ledger.Open(context.Background(), client, "sync")

	var te *model.ExternalToolError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, err.Error(), "opening budget sync")
}

func TestRefresh_PropagatesBackendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := ledger.NewMockClient(ctrl)
	boom := &model.ExternalToolError{Tool: "ledger", Op: "payees", Err: errors.New("502")}

	client.EXPECT().Init(gomock.Any(), "sync").Return(nil)
	client.EXPECT().Accounts(gomock.Any()).Return(nil, nil).AnyTimes()
	client.EXPECT().CategoryGroups(gomock.Any()).Return(nil, nil).AnyTimes()
	client.EXPECT().Categories(gomock.Any()).Return(nil, nil).AnyTimes()
	client.EXPECT().Payees(gomock.Any()).Return(nil, boom)
	client.EXPECT().Transactions(gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := ledger.Open(context.Background(), client, "sync")
	assert.ErrorIs(t, err, boom)
}

func TestImportTransactions_TranslatesBeforeCalling(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	client := ledger.NewMockClient(ctrl)

	client.EXPECT().Init(gomock.Any(), "sync").Return(nil)
	client.EXPECT().Accounts(gomock.Any()).Return([]ledger.Account{{ID: "a1", Name: "ZKB"}}, nil)
	client.EXPECT().CategoryGroups(gomock.Any()).Return(nil, nil)
	client.EXPECT().Categories(gomock.Any()).Return([]ledger.Category{{ID: "c1", Name: "Food"}}, nil)
	client.EXPECT().Payees(gomock.Any()).Return(nil, nil)
	client.EXPECT().Transactions(gomock.Any()).Return(nil, nil)

	s, err := ledger.Open(ctx, client, "sync")
	require.NoError(t, err)

	// No ImportTransactions call is expected; gomock fails the test on one.
	err = s.ImportTransactions(ctx, map[string][]model.RawTransaction{
		"ZKB": {
			{Date: "2024-01-01", PayeeName: "Coop", Amount: -1, Category: "Food"},
			{Date: "2024-01-02", PayeeName: "Bar", Amount: -2, Category: "Drinks"},
		},
	})
	var ure *ledger.UnknownReferenceError
	require.True(t, errors.As(err, &ure))
	assert.Equal(t, "Drinks", ure.Name)
}

func TestImportTransactions_SendsIDs(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	client := ledger.NewMockClient(ctrl)

	client.EXPECT().Init(gomock.Any(), "sync").Return(nil)
	client.EXPECT().Accounts(gomock.Any()).Return([]ledger.Account{{ID: "a1", Name: "ZKB"}, {ID: "a2", Name: "Savings"}}, nil).Times(2)
	client.EXPECT().CategoryGroups(gomock.Any()).Return(nil, nil).Times(2)
	client.EXPECT().Categories(gomock.Any()).Return([]ledger.Category{{ID: "c1", Name: "Food"}}, nil).Times(2)
	client.EXPECT().Payees(gomock.Any()).Return([]ledger.Payee{{ID: "p2", Name: "Savings", TransferAccount: "a2"}}, nil).Times(2)
	client.EXPECT().Transactions(gomock.Any()).Return(nil, nil).Times(2)
	client.EXPECT().ImportTransactions(gomock.Any(), "a1", []ledger.Transaction{
		{Account: "a1", Date: "2024-01-01", Amount: -1, PayeeName: "Coop", Category: "c1"},
		{Account: "a1", Date: "2024-01-02", Amount: -2, Payee: "p2"},
	}).Return(nil)

	s, err := ledger.Open(ctx, client, "sync")
	require.NoError(t, err)

	err = s.ImportTransactions(ctx, map[string][]model.RawTransaction{
		"ZKB": {
			{Date: "2024-01-01", PayeeName: "Coop", Amount: -1, Category: "Food"},
			{Date: "2024-01-02", PayeeName: "To savings", Amount: -2, Transfer: "Savings"},
		},
	})
	require.NoError(t, err)
}
