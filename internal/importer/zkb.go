package importer

import (
	"context"
	"io"
	"strings"

	"github.com/cleared-dev/reconcile/internal/model"
)

// ZKBParser parses Zürcher Kantonalbank account CSV exports.
//
// A multi-row booking carries its value date and direction only on the first
// row; the following detail rows inherit both.
type ZKBParser struct{}

const (
	zkbColValueDate = "Value date"
	zkbColText      = "Booking text"
	zkbColCredit    = "Credit CHF"
	zkbColDebit     = "Debit CHF"
	zkbColDetails   = "Amount details"
	zkbColPurpose   = "Payment purpose"
	zkbColDetailTxt = "Details"
)

// zkbNoisePrefixes mark mobile banking and standing order summary rows.
var zkbNoisePrefixes = []string{
	"Debit eBanking Mobile (",
	"Credit eBanking Mobile (",
	"Debit Standing order (",
}

// Name returns the parser name.
func (p *ZKBParser) Name() string { return "ZKB" }

// Parse reads the export at path.
func (p *ZKBParser) Parse(_ context.Context, path string) ([]model.RawTransaction, error) {
	return parseFile(path, p.Read)
}

// Read parses a ZKB export from r.
func (p *ZKBParser) Read(r io.Reader) ([]model.RawTransaction, error) {
	t, err := readTable(r, ';', 1)
	if err != nil {
		return nil, err
	}
	if err := t.require(zkbColValueDate, zkbColText, zkbColCredit, zkbColDebit); err != nil {
		return nil, err
	}

	var (
		state zkbState
		txns  []model.RawTransaction
	)
	for i := range t.rows {
		next, txn, err := state.step(t.record(i))
		if err != nil {
			return nil, rowError(t.line(i), "%w", err)
		}
		state = next
		if txn != nil {
			txns = append(txns, *txn)
		}
	}
	return txns, nil
}

// zkbState is the value date and direction carried between rows.
type zkbState struct {
	date string
	sign int64
}

// step consumes one row and returns the new state plus the row's transaction,
// which is nil for noise rows.
func (s zkbState) step(rec record) (zkbState, *model.RawTransaction, error) {
	if v := rec.get(zkbColValueDate); v != "" {
		date, err := normalizeDate(layoutLongYear, v)
		if err != nil {
			return s, nil, err
		}
		s.date = date
		s.sign = -1
		if rec.get(zkbColCredit) != "" {
			s.sign = 1
		}
	}

	text := rec.get(zkbColText)
	if isZKBNoise(text) {
		return s, nil, nil
	}
	if s.date == "" {
		return s, nil, errNoValueDate
	}

	value, ok := firstNonZero(
		parseLoose(rec.get(zkbColDetails)).times(s.sign),
		parseLoose(rec.get(zkbColCredit)),
		parseLoose(rec.get(zkbColDebit)).neg(),
	)
	if !ok {
		return s, nil, errNoAmount
	}

	notes := rec.get(zkbColPurpose) + " " + rec.get(zkbColDetailTxt)
	payee, err := firstPayee(text, notes)
	if err != nil {
		return s, nil, err
	}

	return s, &model.RawTransaction{
		Date:      s.date,
		PayeeName: payee,
		Amount:    toCents(value),
		Notes:     notes,
	}, nil
}

func isZKBNoise(text string) bool {
	for _, prefix := range zkbNoisePrefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}
