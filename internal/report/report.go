// Package report renders transaction previews as console tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reconcile/internal/model"
)

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	amountStyle = cellStyle.Align(lipgloss.Right)
)

// Amount formats cents in major units with two decimals.
func Amount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// render writes a bordered table. Columns listed in right are right aligned.
func render(w io.Writer, headers []string, rows [][]string, right ...int) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			for _, c := range right {
				if c == col {
					return amountStyle
				}
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Import previews the records about to be imported for one account.
func Import(w io.Writer, account string, txns []model.RawTransaction) error {
	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, []string{t.Date, t.PayeeName, Amount(t.Amount), t.Category, t.Transfer})
	}
	if err := render(w, []string{"date", "payee_name", "amount", "category", "transfer"}, rows, 2); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Would import %d transactions for %s\n", len(txns), account)
	return err
}

// Change is a proposed category update for a ledger transaction.
type Change struct {
	Txn      model.LedgerTransaction
	Category string
}

// Diff shows proposed category changes next to the current category.
func Diff(w io.Writer, changes []Change) error {
	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, []string{c.Txn.Date, c.Txn.PayeeName, c.Category, c.Txn.Category})
	}
	return render(w, []string{"date", "payee", "category", "old category"}, rows)
}

// Found lists ledger transactions matched in a reference file with the
// category the file assigns them.
func Found(w io.Writer, changes []Change) error {
	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, []string{c.Txn.Date, c.Txn.PayeeName, c.Category})
	}
	return render(w, []string{"date", "payee", "category"}, rows)
}

// Count formats n with its noun, pluralized by a trailing "s".
func Count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
