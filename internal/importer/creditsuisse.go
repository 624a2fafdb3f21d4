package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/reconcile/internal/model"
)

// CreditSuisseParser parses Credit Suisse account CSV exports.
type CreditSuisseParser struct{}

const (
	csPreambleLines = 5
	csFooterLines   = 1
	csColDate       = "Booking Date"
	csColText       = "Text"
	csColCredit     = "Credit"
	csColDebit      = "Debit"
)

// Name returns the parser name.
func (p *CreditSuisseParser) Name() string { return "Credit Suisse" }

// Parse reads the export at path.
func (p *CreditSuisseParser) Parse(_ context.Context, path string) ([]model.RawTransaction, error) {
	return parseFile(path, p.Read)
}

// Read parses a Credit Suisse export from r. The account preamble and the
// closing total line are skipped. The full booking text is kept as notes.
func (p *CreditSuisseParser) Read(r io.Reader) ([]model.RawTransaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading Credit Suisse export: %w", err)
	}

	body := dropLines(string(data), csPreambleLines, csFooterLines)
	t, err := readTable(strings.NewReader(body), ',', csPreambleLines+1)
	if err != nil {
		return nil, err
	}
	if err := t.require(csColDate, csColText, csColCredit, csColDebit); err != nil {
		return nil, err
	}

	txns := make([]model.RawTransaction, 0, len(t.rows))
	for i := range t.rows {
		rec := t.record(i)

		date, err := normalizeDate(layoutLongYear, rec.get(csColDate))
		if err != nil {
			return nil, rowError(t.line(i), "%w", err)
		}

		value, ok := firstNonZero(parseLoose(rec.get(csColCredit)), parseLoose(rec.get(csColDebit)).neg())
		if !ok {
			return nil, rowError(t.line(i), "%w", errNoAmount)
		}

		text := rec.get(csColText)
		payee, err := firstPayee(creditSuissePayee(text))
		if err != nil {
			return nil, rowError(t.line(i), "%w", err)
		}
		txns = append(txns, model.RawTransaction{
			Date:      date,
			PayeeName: payee,
			Amount:    toCents(value),
			Notes:     text,
		})
	}
	return txns, nil
}

// CreditSuisseCreditParser parses Credit Suisse credit card CSV exports.
// Card exports list charges as positive amounts.
type CreditSuisseCreditParser struct{}

const (
	cscColDate     = "Transaction date"
	cscColDesc     = "Description"
	cscColAmount   = "Amount"
	cscColCategory = "Category"
)

// Name returns the parser name.
func (p *CreditSuisseCreditParser) Name() string { return "Credit Suisse Credit" }

// Parse reads the export at path.
func (p *CreditSuisseCreditParser) Parse(_ context.Context, path string) ([]model.RawTransaction, error) {
	return parseFile(path, p.Read)
}

// Read parses a card export from r.
func (p *CreditSuisseCreditParser) Read(r io.Reader) ([]model.RawTransaction, error) {
	t, err := readTable(r, ',', 1)
	if err != nil {
		return nil, err
	}
	if err := t.require(cscColDate, cscColDesc, cscColAmount); err != nil {
		return nil, err
	}

	txns := make([]model.RawTransaction, 0, len(t.rows))
	for i := range t.rows {
		rec := t.record(i)

		date, err := normalizeDate(layoutLongYear, rec.get(cscColDate))
		if err != nil {
			return nil, rowError(t.line(i), "%w", err)
		}

		value := parseLoose(rec.get(cscColAmount))
		if !value.ok {
			return nil, rowError(t.line(i), "parsing amount %q", rec.get(cscColAmount))
		}

		payee, err := firstPayee(rec.get(cscColDesc), rec.get(cscColCategory))
		if err != nil {
			return nil, rowError(t.line(i), "%w", err)
		}

		txns = append(txns, model.RawTransaction{
			Date:      date,
			PayeeName: payee,
			Amount:    -toCents(value.v),
			Notes:     rec.get(cscColCategory),
		})
	}
	return txns, nil
}
