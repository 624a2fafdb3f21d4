package actual

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/reconcile/internal/ledger"
	"github.com/cleared-dev/reconcile/internal/model"
)

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]any
	header http.Header
}

type fakeServer struct {
	mu       sync.Mutex
	requests []recorded
	routes   map[string]func(w http.ResponseWriter)
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	f := &fakeServer{routes: make(map[string]func(http.ResponseWriter))}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, header: r.Header.Clone()}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			assert.NoError(t, json.Unmarshal(data, &rec.body))
		}
		f.mu.Lock()
		f.requests = append(f.requests, rec)
		route, ok := f.routes[r.Method+" "+r.URL.Path]
		f.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": "no such route"}`))
			return
		}
		route(w)
	}))
	t.Cleanup(ts.Close)
	return f, ts
}

func (f *fakeServer) handle(route string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[route] = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (f *fakeServer) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

const budgetPath = "/v1/budgets/sync-1"

func initClient(t *testing.T, f *fakeServer, ts *httptest.Server, opts ...Option) *Client {
	t.Helper()
	f.handle("GET "+budgetPath+"/accounts", http.StatusOK, `{"data": [{"id": "a1", "name": "ZKB", "type": "checking", "offbudget": false}]}`)
	c := New(ts.URL+"/", "key-123", opts...)
	require.NoError(t, c.Init(context.Background(), "sync-1"))
	return c
}

func TestInit_SendsHeaders(t *testing.T) {
	f, ts := newFakeServer(t)
	initClient(t, f, ts, WithBudgetPassword("pw"))

	req := f.last()
	assert.Equal(t, budgetPath+"/accounts", req.path)
	assert.Equal(t, "key-123", req.header.Get("x-api-key"))
	assert.Equal(t, "pw", req.header.Get("budget-encryption-password"))
}

func TestNotInitialized(t *testing.T) {
	_, ts := newFakeServer(t)
	_, err := New(ts.URL, "key").Accounts(context.Background())

	var te *model.ExternalToolError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "actual", te.Tool)
}

func TestAccounts(t *testing.T) {
	f, ts := newFakeServer(t)
	c := initClient(t, f, ts)

	accts, err := c.Accounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []ledger.Account{{ID: "a1", Name: "ZKB", Type: "checking"}}, accts)
}

func TestCreateAccount(t *testing.T) {
	f, ts := newFakeServer(t)
	c := initClient(t, f, ts)
	f.handle("POST "+budgetPath+"/accounts", http.StatusCreated, `{"data": "new-id"}`)

	id, err := c.CreateAccount(context.Background(), ledger.Account{Name: "Savings", Type: "savings", OffBudget: true})
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)

	req := f.last()
	assert.Equal(t, "application/json", req.header.Get("Content-Type"))
	acct := req.body["account"].(map[string]any)
	assert.Equal(t, "Savings", acct["name"])
	assert.Equal(t, true, acct["offbudget"])
	assert.EqualValues(t, 0, req.body["initialBalance"])
}

func TestCategoryCalls(t *testing.T) {
	f, ts := newFakeServer(t)
	c := initClient(t, f, ts)
	ctx := context.Background()

	f.handle("POST "+budgetPath+"/categorygroups", http.StatusCreated, `{"data": "g1"}`)
	gid, err := c.CreateCategoryGroup(ctx, ledger.CategoryGroup{Name: "Food"})
	require.NoError(t, err)
	assert.Equal(t, "g1", gid)
	assert.Equal(t, "Food", f.last().body["category_group"].(map[string]any)["name"])

	f.handle("POST "+budgetPath+"/categories", http.StatusCreated, `{"data": "c1"}`)
	cid, err := c.CreateCategory(ctx, ledger.Category{Name: "Groceries", GroupID: gid})
	require.NoError(t, err)
	assert.Equal(t, "c1", cid)
	assert.Equal(t, "g1", f.last().body["category"].(map[string]any)["group_id"])

	f.handle("GET "+budgetPath+"/categories", http.StatusOK, `{"data": [{"id": "c1", "name": "Groceries", "group_id": "g1"}]}`)
	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ledger.Category{{ID: "c1", Name: "Groceries", GroupID: "g1"}}, cats)

	f.handle("DELETE "+budgetPath+"/categories/c1", http.StatusOK, `{"message": "ok"}`)
	require.NoError(t, c.DeleteCategory(ctx, "c1"))
	f.handle("DELETE "+budgetPath+"/categorygroups/g1", http.StatusOK, ``)
	require.NoError(t, c.DeleteCategoryGroup(ctx, "g1"))
}

func TestTransactions_AcrossAccounts(t *testing.T) {
	f, ts := newFakeServer(t)
	c := initClient(t, f, ts)
	f.handle("GET "+budgetPath+"/accounts", http.StatusOK, `{"data": [{"id": "a1", "name": "ZKB"}, {"id": "a2", "name": "DKB"}]}`)
	f.handle("GET "+budgetPath+"/accounts/a1/transactions", http.StatusOK,
		`{"data": [{"id": "t1", "account": "a1", "date": "2024-01-02", "amount": -500, "payee": "p1", "transfer_id": null}]}`)
	f.handle("GET "+budgetPath+"/accounts/a2/transactions", http.StatusOK,
		`{"data": [{"id": "t2", "account": "a2", "date": "2024-01-03", "amount": 700, "payee": "p2", "is_parent": true}]}`)

	txns, err := c.Transactions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []ledger.Transaction{
		{ID: "t1", Account: "a1", Date: "2024-01-02", Amount: -500, Payee: "p1"},
		{ID: "t2", Account: "a2", Date: "2024-01-03", Amount: 700, Payee: "p2", IsParent: true},
	}, txns)

	for _, r := range f.requests {
		if r.path == budgetPath+"/accounts/a1/transactions" {
			assert.Equal(t, "since_date=1970-01-01", r.query)
		}
	}
}

func TestImportTransactions(t *testing.T) {
	f, ts := newFakeServer(t)
	c := initClient(t, f, ts)
	f.handle("POST "+budgetPath+"/accounts/a1/transactions/import", http.StatusOK, `{"data": {"added": ["t1"], "updated": []}}`)

	err := c.ImportTransactions(context.Background(), "a1", []ledger.Transaction{
		{Account: "a1", Date: "2024-01-02", Amount: -500, PayeeName: "Migros", Category: "c1"},
	})
	require.NoError(t, err)

	txns := f.last().body["transactions"].([]any)
	require.Len(t, txns, 1)
	first := txns[0].(map[string]any)
	assert.Equal(t, "Migros", first["payee_name"])
	assert.EqualValues(t, -500, first["amount"])
	assert.NotContains(t, first, "id")
}

func TestUpdateAndDeleteTransaction(t *testing.T) {
	f, ts := newFakeServer(t)
	c := initClient(t, f, ts)
	ctx := context.Background()

	f.handle("PATCH "+budgetPath+"/transactions/t1", http.StatusOK, `{"message": "ok"}`)
	require.NoError(t, c.UpdateTransaction(ctx, "t1", ledger.TransactionPatch{Category: "c9"}))
	assert.Equal(t, "c9", f.last().body["transaction"].(map[string]any)["category"])

	f.handle("DELETE "+budgetPath+"/transactions/t1", http.StatusOK, `{"message": "ok"}`)
	require.NoError(t, c.DeleteTransaction(ctx, "t1"))
	assert.Equal(t, http.MethodDelete, f.last().method)
}

func TestErrorStatus(t *testing.T) {
	f, ts := newFakeServer(t)
	c := initClient(t, f, ts)
	f.handle("GET "+budgetPath+"/payees", http.StatusUnauthorized, `{"message": "invalid api key"}`)

	_, err := c.Payees(context.Background())

	var te *model.ExternalToolError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "GET /payees", te.Op)
	assert.Contains(t, err.Error(), "status 401: invalid api key")
}

func TestErrorStatus_NoBody(t *testing.T) {
	f, ts := newFakeServer(t)
	c := initClient(t, f, ts)
	f.handle("DELETE "+budgetPath+"/accounts/a1", http.StatusInternalServerError, ``)

	err := c.DeleteAccount(context.Background(), "a1")
	assert.ErrorContains(t, err, "status 500: Internal Server Error")
}

func TestServerUnreachable(t *testing.T) {
	_, ts := newFakeServer(t)
	url := ts.URL
	ts.Close()

	err := New(url, "key").Init(context.Background(), "sync-1")

	var te *model.ExternalToolError
	assert.True(t, errors.As(err, &te))
}
