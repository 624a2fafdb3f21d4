// Package importer parses bank statement exports into RawTransactions.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/reconcile/internal/encoding"
	"github.com/cleared-dev/reconcile/internal/model"
	"github.com/cleared-dev/reconcile/internal/tabula"
)

// Parser converts one statement file into RawTransactions in file order.
type Parser interface {
	Parse(ctx context.Context, path string) ([]model.RawTransaction, error)
	Name() string
}

// readerFunc is the shape of the text parsers' Read methods.
type readerFunc func(r io.Reader) ([]model.RawTransaction, error)

// parseFile decodes path to UTF-8 and hands it to read, tagging errors with
// the file path.
func parseFile(path string, read readerFunc) ([]model.RawTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	r, err := encoding.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	txns, err := read(r)
	if err != nil {
		return nil, withPath(err, path)
	}
	return txns, nil
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate name.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Name())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser name: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser registered under name, or nil.
func (r *Registry) Get(name string) Parser {
	return r.parsers[strings.ToLower(name)]
}

// Lookup is Get with an UnregisteredParserError for unknown names.
func (r *Registry) Lookup(name string) (Parser, error) {
	p := r.Get(name)
	if p == nil {
		return nil, &UnregisteredParserError{Name: name, Known: r.Names()}
	}
	return p, nil
}

// Names returns the registered parser names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.parsers))
	for _, p := range r.parsers {
		names = append(names, p.Name())
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers. PDF parsers
// extract their tables through ex.
func DefaultRegistry(ex tabula.Extractor) *Registry {
	r := NewRegistry()
	r.Register(&CreditSuisseParser{})
	r.Register(&CreditSuisseCreditParser{})
	r.Register(NewCembraParser(ex))
	r.Register(&InteractiveBrokersParser{})
	r.Register(&ZKBParser{})
	r.Register(NewZKBOneParser(ex))
	r.Register(&DKBParser{})
	return r
}

// Discover returns the statement files at path: path itself when it is a file,
// or every non-hidden regular file inside it when it is a directory, by name.
func Discover(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading statement dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	return files, nil
}
