// Package exchange reads and writes transaction files. The format is chosen
// by extension: .csv or .json.
package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/reconcile/internal/model"
)

// ErrUnsupportedFormat is returned for extensions other than .csv and .json.
var ErrUnsupportedFormat = errors.New("invalid file format, use .csv or .json")

type format int

const (
	formatCSV format = iota + 1
	formatJSON
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return formatCSV, nil
	case ".json":
		return formatJSON, nil
	}
	return 0, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// ReadFile reads records from a CSV or JSON file.
func ReadFile(path string) ([]model.RawTransaction, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	var txns []model.RawTransaction
	switch f {
	case formatCSV:
		txns, err = ReadCSV(file)
	case formatJSON:
		err = json.NewDecoder(file).Decode(&txns)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return txns, nil
}

// WriteRecords writes parsed records to path.
func WriteRecords(path string, txns []model.RawTransaction) error {
	return writeFile(path, txns, func(w io.Writer) error { return WriteRecordsCSV(w, txns) })
}

// WriteLedger writes ledger transactions to path.
func WriteLedger(path string, txns []model.LedgerTransaction) error {
	return writeFile(path, txns, func(w io.Writer) error { return WriteLedgerCSV(w, txns) })
}

func writeFile(path string, v any, writeCSV func(io.Writer) error) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	switch f {
	case formatCSV:
		err = writeCSV(file)
	case formatJSON:
		enc := json.NewEncoder(file)
		enc.SetIndent("", "  ")
		err = enc.Encode(v)
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
