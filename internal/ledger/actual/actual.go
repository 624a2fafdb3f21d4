// Package actual is a ledger backend for an actual-http-api server.
package actual

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/reconcile/internal/ledger"
	"github.com/cleared-dev/reconcile/internal/model"
)

const toolName = "actual"

// Client talks to actual-http-api over REST.
type Client struct {
	baseURL  string
	apiKey   string
	password string
	http     *http.Client

	syncID string
}

var _ ledger.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBudgetPassword sets the end-to-end encryption password of the budget.
func WithBudgetPassword(pw string) Option {
	return func(c *Client) { c.password = pw }
}

// New creates a client for the server at baseURL.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// do sends a request under /v1/budgets/<syncID> and decodes the data field
// of the response into out, if out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path
	fail := func(err error) error {
		return &model.ExternalToolError{Tool: toolName, Op: op, Err: err}
	}

	if c.syncID == "" {
		return fail(errors.New("budget not initialized"))
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fail(fmt.Errorf("encoding request: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + "/v1/budgets/" + url.PathEscape(c.syncID) + path
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fail(err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.password != "" {
		req.Header.Set("budget-encryption-password", c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(fmt.Errorf("reading response: %w", err))
	}

	var env envelope
	if len(data) > 0 {
		if err := json.Unmarshal(data, &env); err != nil && resp.StatusCode < 300 {
			return fail(fmt.Errorf("decoding response: %w", err))
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fail(fmt.Errorf("status %d: %s", resp.StatusCode, msg))
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fail(fmt.Errorf("decoding data: %w", err))
	}
	return nil
}

// Init selects the budget and checks that the server can open it.
func (c *Client) Init(ctx context.Context, syncID string) error {
	c.syncID = syncID
	return c.do(ctx, http.MethodGet, "/accounts", nil, nil)
}

// Shutdown is a no-op; the server owns the budget.
func (c *Client) Shutdown(context.Context) error { return nil }

// Accounts lists accounts.
func (c *Client) Accounts(ctx context.Context) ([]ledger.Account, error) {
	var out []ledger.Account
	err := c.do(ctx, http.MethodGet, "/accounts", nil, &out)
	return out, err
}

// CreateAccount creates an account with a zero opening balance.
func (c *Client) CreateAccount(ctx context.Context, a ledger.Account) (string, error) {
	var id string
	err := c.do(ctx, http.MethodPost, "/accounts", map[string]any{"account": a, "initialBalance": 0}, &id)
	return id, err
}

// DeleteAccount deletes an account.
func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/accounts/"+url.PathEscape(id), nil, nil)
}

// CategoryGroups lists category groups.
func (c *Client) CategoryGroups(ctx context.Context) ([]ledger.CategoryGroup, error) {
	var out []ledger.CategoryGroup
	err := c.do(ctx, http.MethodGet, "/categorygroups", nil, &out)
	return out, err
}

// CreateCategoryGroup creates a category group.
func (c *Client) CreateCategoryGroup(ctx context.Context, g ledger.CategoryGroup) (string, error) {
	var id string
	err := c.do(ctx, http.MethodPost, "/categorygroups", map[string]any{"category_group": g}, &id)
	return id, err
}

// DeleteCategoryGroup deletes a category group.
func (c *Client) DeleteCategoryGroup(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categorygroups/"+url.PathEscape(id), nil, nil)
}

// Categories lists categories.
func (c *Client) Categories(ctx context.Context) ([]ledger.Category, error) {
	var out []ledger.Category
	err := c.do(ctx, http.MethodGet, "/categories", nil, &out)
	return out, err
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, cat ledger.Category) (string, error) {
	var id string
	err := c.do(ctx, http.MethodPost, "/categories", map[string]any{"category": cat}, &id)
	return id, err
}

// DeleteCategory deletes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
}

// Payees lists payees.
func (c *Client) Payees(ctx context.Context) ([]ledger.Payee, error) {
	var out []ledger.Payee
	err := c.do(ctx, http.MethodGet, "/payees", nil, &out)
	return out, err
}

// sinceDate is early enough to list every transaction.
const sinceDate = "1970-01-01"

// Transactions lists the transactions of every account, fetched concurrently.
func (c *Client) Transactions(ctx context.Context) ([]ledger.Transaction, error) {
	accounts, err := c.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	perAccount := make([][]ledger.Transaction, len(accounts))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range accounts {
		g.Go(func() error {
			path := "/accounts/" + url.PathEscape(a.ID) + "/transactions?since_date=" + sinceDate
			return c.do(gctx, http.MethodGet, path, nil, &perAccount[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []ledger.Transaction
	for _, txns := range perAccount {
		out = append(out, txns...)
	}
	return out, nil
}

// ImportTransactions imports transactions into an account. The server
// reconciles them against existing ones.
func (c *Client) ImportTransactions(ctx context.Context, accountID string, txns []ledger.Transaction) error {
	path := "/accounts/" + url.PathEscape(accountID) + "/transactions/import"
	return c.do(ctx, http.MethodPost, path, map[string]any{"transactions": txns}, nil)
}

// UpdateTransaction patches a transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id string, patch ledger.TransactionPatch) error {
	return c.do(ctx, http.MethodPatch, "/transactions/"+url.PathEscape(id), map[string]any{"transaction": patch}, nil)
}

// DeleteTransaction deletes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil)
}
