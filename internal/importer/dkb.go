package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/reconcile/internal/model"
)

// DKBParser parses Deutsche Kreditbank giro account CSV exports.
type DKBParser struct{}

const (
	dkbPreambleLines = 4
	dkbColValueDate  = "Wertstellung"
	dkbColType       = "Umsatztyp"
	dkbColPayer      = "Zahlungspflichtige*r"
	dkbColPayee      = "Zahlungsempfänger*in"
	dkbColAmount     = "Betrag (€)"
	dkbColPurpose    = "Verwendungszweck"
	dkbTypeIncoming  = "Eingang"
)

// Name returns the parser name.
func (p *DKBParser) Name() string { return "DKB" }

// Parse reads the export at path.
func (p *DKBParser) Parse(_ context.Context, path string) ([]model.RawTransaction, error) {
	return parseFile(path, p.Read)
}

// Read parses a DKB export from r. The account summary above the header is
// skipped.
func (p *DKBParser) Read(r io.Reader) ([]model.RawTransaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading DKB export: %w", err)
	}

	body := dropLines(string(data), dkbPreambleLines, 0)
	t, err := readTable(strings.NewReader(body), ';', dkbPreambleLines+1)
	if err != nil {
		return nil, err
	}
	if err := t.require(dkbColValueDate, dkbColType, dkbColAmount); err != nil {
		return nil, err
	}

	txns := make([]model.RawTransaction, 0, len(t.rows))
	for i := range t.rows {
		rec := t.record(i)

		date, err := normalizeDate(layoutShortYear, rec.get(dkbColValueDate))
		if err != nil {
			return nil, rowError(t.line(i), "%w", err)
		}

		value := parseGerman(rec.get(dkbColAmount))
		if !value.ok {
			return nil, rowError(t.line(i), "parsing amount %q", rec.get(dkbColAmount))
		}

		// Fee rows leave the counterparty empty.
		primary, other := rec.get(dkbColPayee), rec.get(dkbColPayer)
		if rec.get(dkbColType) == dkbTypeIncoming {
			primary, other = other, primary
		}
		payee, err := firstPayee(primary, rec.get(dkbColPurpose), other)
		if err != nil {
			return nil, rowError(t.line(i), "%w", err)
		}

		txns = append(txns, model.RawTransaction{
			Date:      date,
			PayeeName: payee,
			Amount:    toCents(value.v),
			Notes:     rec.get(dkbColPurpose),
		})
	}
	return txns, nil
}
