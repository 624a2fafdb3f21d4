package importer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cleared-dev/reconcile/internal/model"
	"github.com/cleared-dev/reconcile/internal/tabula"
)

// isPDF reports whether path names a PDF. PDF parsers ignore other files in
// an account folder.
func isPDF(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".pdf")
}

func extract(ctx context.Context, ex tabula.Extractor, path string, columns []float64) ([][]string, error) {
	if ex == nil {
		return nil, &model.ExternalToolError{Tool: "tabula", Op: "extract " + path, Err: fmt.Errorf("no table extractor configured")}
	}
	return ex.ExtractTable(ctx, path, tabula.Options{Pages: "all", Columns: columns})
}

// ZKBOneParser parses ZKB One credit card PDF statements.
type ZKBOneParser struct {
	extractor tabula.Extractor
}

// NewZKBOneParser returns a parser extracting tables through ex.
func NewZKBOneParser(ex tabula.Extractor) *ZKBOneParser {
	return &ZKBOneParser{extractor: ex}
}

var (
	zkbOneColumns = []float64{132, 400, 480, 520}
	// zkbOneDates is the booking and value date pair opening a transaction row.
	zkbOneDates = regexp.MustCompile(`\b(\d{2}\.\d{2}\.\d{2})\s+\d{2}\.\d{2}\.\d{2}\b`)
)

const (
	zkbOneColDates  = 0
	zkbOneColPayee  = 1
	zkbOneColAmount = 4
)

// Name returns the parser name.
func (p *ZKBOneParser) Name() string { return "ZKB One" }

// Parse extracts and parses the statement at path.
func (p *ZKBOneParser) Parse(ctx context.Context, path string) ([]model.RawTransaction, error) {
	if !isPDF(path) {
		return nil, nil
	}
	rows, err := extract(ctx, p.extractor, path, zkbOneColumns)
	if err != nil {
		return nil, err
	}
	txns, err := p.Rows(rows)
	if err != nil {
		return nil, withPath(err, path)
	}
	return txns, nil
}

// Rows converts extracted table rows. Rows without the date pair are headers,
// footers or page breaks and are dropped. An amount containing a minus is a
// credit to the card.
func (p *ZKBOneParser) Rows(rows [][]string) ([]model.RawTransaction, error) {
	var txns []model.RawTransaction
	for i, row := range rows {
		m := zkbOneDates.FindStringSubmatch(cell(row, zkbOneColDates))
		if m == nil {
			continue
		}

		date, err := normalizeDate(layoutShortYear, m[1])
		if err != nil {
			return nil, rowError(i+1, "%w", err)
		}

		raw := cell(row, zkbOneColAmount)
		value := parseLoose(stripThousands(raw))
		if !value.ok {
			return nil, rowError(i+1, "parsing amount %q", raw)
		}
		sign := int64(-1)
		if strings.Contains(raw, "-") {
			sign = 1
		}

		payee, err := firstPayee(cell(row, zkbOneColPayee))
		if err != nil {
			return nil, rowError(i+1, "%w", err)
		}

		txns = append(txns, model.RawTransaction{
			Date:      date,
			PayeeName: payee,
			Amount:    toCents(value.times(sign).v),
		})
	}
	return txns, nil
}

// CembraParser parses Cembra credit card PDF statements.
type CembraParser struct {
	extractor tabula.Extractor
}

// NewCembraParser returns a parser extracting tables through ex.
func NewCembraParser(ex tabula.Extractor) *CembraParser {
	return &CembraParser{extractor: ex}
}

var (
	cembraColumns = []float64{129, 201, 408, 480}
	cembraDate    = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)
)

const (
	cembraColDate   = 1
	cembraColPayee  = 2
	cembraColCredit = 3
	cembraColDebit  = 4
)

// Name returns the parser name.
func (p *CembraParser) Name() string { return "Cembra" }

// Parse extracts and parses the statement at path.
func (p *CembraParser) Parse(ctx context.Context, path string) ([]model.RawTransaction, error) {
	if !isPDF(path) {
		return nil, nil
	}
	rows, err := extract(ctx, p.extractor, path, cembraColumns)
	if err != nil {
		return nil, err
	}
	txns, err := p.Rows(rows)
	if err != nil {
		return nil, withPath(err, path)
	}
	return txns, nil
}

// Rows converts extracted table rows. Rows without a date, and dated rows
// with neither amount cell (balance carried forward), are dropped.
func (p *CembraParser) Rows(rows [][]string) ([]model.RawTransaction, error) {
	var txns []model.RawTransaction
	for i, row := range rows {
		m := cembraDate.FindString(cell(row, cembraColDate))
		if m == "" {
			continue
		}
		credit, debit := cell(row, cembraColCredit), cell(row, cembraColDebit)
		if credit == "" && debit == "" {
			continue
		}

		date, err := normalizeDate(layoutLongYear, m)
		if err != nil {
			return nil, rowError(i+1, "%w", err)
		}

		value, ok := firstNonZero(parseLoose(stripThousands(credit)), parseLoose(stripThousands(debit)).neg())
		if !ok {
			return nil, rowError(i+1, "%w", errNoAmount)
		}

		payee, err := firstPayee(cell(row, cembraColPayee))
		if err != nil {
			return nil, rowError(i+1, "%w", err)
		}

		txns = append(txns, model.RawTransaction{
			Date:      date,
			PayeeName: payee,
			Amount:    toCents(value),
		})
	}
	return txns, nil
}
