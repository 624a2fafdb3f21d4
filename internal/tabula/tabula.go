// Package tabula extracts text tables from PDF statements.
package tabula

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/cleared-dev/reconcile/internal/model"
)

//go:generate mockgen -source=tabula.go -destination=extractor_mock.go -package=tabula

// Extractor turns a PDF into a grid of text cells.
type Extractor interface {
	ExtractTable(ctx context.Context, path string, opts Options) ([][]string, error)
}

// Options controls an extraction.
type Options struct {
	Pages   string    // "all" when empty
	Columns []float64 // x coordinates of column boundaries, in points
}

// ColumnsArg renders the boundaries the way tabula's -c flag expects.
func (o Options) ColumnsArg() string {
	parts := make([]string, len(o.Columns))
	for i, c := range o.Columns {
		parts[i] = strconv.FormatFloat(c, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Command runs the tabula-java jar as a subprocess.
type Command struct {
	Java string
	Jar  string
}

// NewCommand returns a Command; java defaults to "java" on PATH.
func NewCommand(java, jar string) *Command {
	if java == "" {
		java = "java"
	}
	return &Command{Java: java, Jar: jar}
}

// Args returns the argument list passed to java for path.
func (c *Command) Args(path string, opts Options) []string {
	pages := opts.Pages
	if pages == "" {
		pages = "all"
	}
	args := []string{"-jar", c.Jar, "--pages", pages, "-f", "CSV"}
	if len(opts.Columns) > 0 {
		args = append(args, "-c", opts.ColumnsArg())
	}
	return append(args, path)
}

// ExtractTable runs tabula on path and parses its CSV output.
func (c *Command) ExtractTable(ctx context.Context, path string, opts Options) ([][]string, error) {
	if c.Jar == "" {
		return nil, toolError("locate jar", errors.New("TABULA_JAR is not set"))
	}
	if _, err := os.Stat(c.Jar); err != nil {
		return nil, toolError("locate jar", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Java, c.Args(path, opts)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return nil, toolError("extract "+path, err)
	}

	rows, err := ParseCSV(stdout.Bytes())
	if err != nil {
		return nil, toolError("read output of "+path, err)
	}
	return rows, nil
}

// ParseCSV parses tabula's CSV output. Rows may have differing widths.
func ParseCSV(data []byte) ([][]string, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing table CSV: %w", err)
	}
	return rows, nil
}

func toolError(op string, err error) error {
	return &model.ExternalToolError{Tool: "tabula", Op: op, Err: err}
}
