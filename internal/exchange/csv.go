package exchange

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/reconcile/internal/model"
)

type column[T any] struct {
	name string
	get  func(T) string
}

func amount(v int64) string { return strconv.FormatInt(v, 10) }

var recordColumns = []column[model.RawTransaction]{
	{"date", func(t model.RawTransaction) string { return t.Date }},
	{"payee_name", func(t model.RawTransaction) string { return t.PayeeName }},
	{"amount", func(t model.RawTransaction) string { return amount(t.Amount) }},
	{"notes", func(t model.RawTransaction) string { return t.Notes }},
	{"account", func(t model.RawTransaction) string { return t.Account }},
	{"category", func(t model.RawTransaction) string { return t.Category }},
	{"transfer", func(t model.RawTransaction) string { return t.Transfer }},
}

var ledgerColumns = []column[model.LedgerTransaction]{
	{"id", func(t model.LedgerTransaction) string { return t.ID }},
	{"date", func(t model.LedgerTransaction) string { return t.Date }},
	{"account", func(t model.LedgerTransaction) string { return t.Account }},
	{"payee_name", func(t model.LedgerTransaction) string { return t.PayeeName }},
	{"amount", func(t model.LedgerTransaction) string { return amount(t.Amount) }},
	{"notes", func(t model.LedgerTransaction) string { return t.Notes }},
	{"category", func(t model.LedgerTransaction) string { return t.Category }},
	{"transfer", func(t model.LedgerTransaction) string { return t.Transfer }},
	{"transfer_id", func(t model.LedgerTransaction) string { return t.TransferID }},
	{"is_parent", func(t model.LedgerTransaction) string { return strconv.FormatBool(t.IsParent) }},
}

// WriteRecordsCSV writes parsed records with a header row.
func WriteRecordsCSV(w io.Writer, txns []model.RawTransaction) error {
	return writeCSV(w, recordColumns, txns)
}

// WriteLedgerCSV writes ledger transactions with a header row.
func WriteLedgerCSV(w io.Writer, txns []model.LedgerTransaction) error {
	return writeCSV(w, ledgerColumns, txns)
}

func writeCSV[T any](w io.Writer, cols []column[T], rows []T) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.name
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	rec := make([]string, len(cols))
	for i, row := range rows {
		for j, c := range cols {
			rec[j] = c.get(row)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads records from a CSV file with a header row. Columns are
// matched by name; unknown columns are ignored and missing ones stay empty.
func ReadCSV(r io.Reader) ([]model.RawTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	get := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	txns := make([]model.RawTransaction, 0, len(records)-1)
	for i, rec := range records[1:] {
		t := model.RawTransaction{
			Date:      get(rec, "date"),
			PayeeName: get(rec, "payee_name"),
			Notes:     get(rec, "notes"),
			Account:   get(rec, "account"),
			Category:  get(rec, "category"),
			Transfer:  get(rec, "transfer"),
		}
		if s := get(rec, "amount"); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, s, err)
			}
			t.Amount = v
		}
		txns = append(txns, t)
	}
	return txns, nil
}
