package importer

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError reports a statement whose structure could not be read.
type ParseError struct {
	Path string
	Row  int // 1-based line of the source, 0 when not row specific
	Err  error
}

func (e *ParseError) Error() string {
	loc := "statement"
	if e.Path != "" {
		loc = e.Path
	}
	if e.Row > 0 {
		return fmt.Sprintf("parse %s row %d: %v", loc, e.Row, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", loc, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnregisteredParserError is returned when an account names an unknown parser.
type UnregisteredParserError struct {
	Name  string
	Known []string
}

func (e *UnregisteredParserError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("parser %q not found", e.Name)
	}
	return fmt.Sprintf("parser %q not found, known parsers: %s", e.Name, strings.Join(e.Known, ", "))
}

func rowError(row int, format string, args ...any) error {
	return &ParseError{Row: row, Err: fmt.Errorf(format, args...)}
}

func structureError(format string, args ...any) error {
	return &ParseError{Err: fmt.Errorf(format, args...)}
}

// withPath fills in the file path on a ParseError.
func withPath(err error, path string) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Path == "" {
		cp := *pe
		cp.Path = path
		return &cp
	}
	return err
}

var (
	errNoValueDate = errors.New("row has no value date and no earlier dated row")
	errNoAmount    = errors.New("row has no parseable amount")
	errNoPayee     = errors.New("row has no text to name the payee")
)
