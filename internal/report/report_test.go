package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/reconcile/internal/model"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{10000, "100.00"},
		{-5000, "-50.00"},
		{5, "0.05"},
		{-123457, "-1234.57"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Amount(tt.cents))
	}
}

func TestImport(t *testing.T) {
	var buf bytes.Buffer
	err := Import(&buf, "ZKB", []model.RawTransaction{
		{Date: "2021-01-05", PayeeName: "Migros", Amount: -4550, Category: "Groceries"},
		{Date: "2021-01-25", PayeeName: "Employer AG", Amount: 500000, Transfer: "Savings"},
	})
	require.NoError(t, err)

	out := buf.String()
	for _, want := range []string{"date", "payee_name", "amount", "category", "transfer",
		"2021-01-05", "Migros", "-45.50", "Groceries", "5000.00", "Savings"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "Would import 2 transactions for ZKB\n")
}

func TestDiff(t *testing.T) {
	var buf bytes.Buffer
	err := Diff(&buf, []Change{{
		Txn: model.LedgerTransaction{
			ID:             "t1",
			RawTransaction: model.RawTransaction{Date: "2021-02-01", PayeeName: "SBB", Category: "Travel"},
		},
		Category: "Transport",
	}})
	require.NoError(t, err)

	out := buf.String()
	for _, want := range []string{"old category", "2021-02-01", "SBB", "Transport", "Travel"} {
		assert.Contains(t, out, want)
	}
}

func TestFound(t *testing.T) {
	var buf bytes.Buffer
	err := Found(&buf, []Change{{
		Txn:      model.LedgerTransaction{RawTransaction: model.RawTransaction{Date: "2021-02-01", PayeeName: "SBB"}},
		Category: "Transport",
	}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "SBB")
	assert.Contains(t, out, "Transport")
	assert.NotContains(t, out, "old category")
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1 transaction", Count(1, "transaction"))
	assert.Equal(t, "0 transactions", Count(0, "transaction"))
	assert.Equal(t, "3 transactions", Count(3, "transaction"))
}
