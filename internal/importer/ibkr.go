package importer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cleared-dev/reconcile/internal/model"
)

// InteractiveBrokersParser extracts cash transfers from Interactive Brokers
// activity statements. Only deposit/withdrawal lines are transactions; the
// rest of the multi-section statement is ignored.
type InteractiveBrokersParser struct{}

const (
	ibkrMarker    = "Electronic Fund Transfer"
	ibkrColDate   = 3
	ibkrColPayee  = 4
	ibkrColAmount = 5
)

// Name returns the parser name.
func (p *InteractiveBrokersParser) Name() string { return "Interactive Brokers" }

// Parse reads the statement at path.
func (p *InteractiveBrokersParser) Parse(_ context.Context, path string) ([]model.RawTransaction, error) {
	return parseFile(path, p.Read)
}

// Read parses an activity statement from r.
func (p *InteractiveBrokersParser) Read(r io.Reader) ([]model.RawTransaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading IBKR statement: %w", err)
	}

	var txns []model.RawTransaction
	for i, line := range strings.Split(string(data), "\n") {
		if !strings.Contains(line, ibkrMarker) {
			continue
		}

		fields := strings.Split(strings.TrimRight(line, "\r"), ",")
		if len(fields) <= ibkrColAmount {
			return nil, rowError(i+1, "expected at least %d fields, got %d", ibkrColAmount+1, len(fields))
		}

		date, err := ibkrDate(fields[ibkrColDate])
		if err != nil {
			return nil, rowError(i+1, "%w", err)
		}

		value := parseLoose(fields[ibkrColAmount])
		if !value.ok {
			return nil, rowError(i+1, "parsing amount %q", fields[ibkrColAmount])
		}

		// Every matched line carries the marker, so the payee is never empty.
		payee, _ := firstPayee(fields[ibkrColPayee], ibkrMarker)
		txns = append(txns, model.RawTransaction{
			Date:      date,
			PayeeName: payee,
			Amount:    toCents(value.v),
		})
	}
	return txns, nil
}

// ibkrDate accepts the ISO and compact date forms IBKR statements use.
func ibkrDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{model.DateFormat, "20060102"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(model.DateFormat), nil
		}
	}
	return "", fmt.Errorf("parsing date %q", s)
}
