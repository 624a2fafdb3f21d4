// Package config loads the budget config file and the environment settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/reconcile/internal/rules"
)

// Config is the budget definition: categories with their rules and the
// accounts to import.
type Config struct {
	SyncID     string       `yaml:"sync_id" json:"sync_id"`
	Categories []rules.Rule `yaml:"categories" json:"categories"`
	Accounts   []Account    `yaml:"accounts" json:"accounts"`

	// Path is the file the config was loaded from.
	Path string `yaml:"-" json:"-"`
}

// Account describes one ledger account and where its statements live.
type Account struct {
	Name           string        `yaml:"name" json:"name"`
	Type           string        `yaml:"type" json:"type"`
	Folder         string        `yaml:"folder,omitempty" json:"folder,omitempty"` // file or directory, relative to the config
	Parser         string        `yaml:"parser,omitempty" json:"parser,omitempty"`
	OffBudget      bool          `yaml:"offbudget,omitempty" json:"offbudget,omitempty"`
	InitialBalance *rules.Amount `yaml:"initial_balance,omitempty" json:"initial_balance,omitempty"`
	Filter         *rules.Match  `yaml:"filter,omitempty" json:"filter,omitempty"`
	Transform      *Transform    `yaml:"transform,omitempty" json:"transform,omitempty"`
}

// Transform rewrites an account's parsed records before categorization.
type Transform struct {
	Negate   bool   `yaml:"negate,omitempty" json:"negate,omitempty"`
	Payee    string `yaml:"payee,omitempty" json:"payee,omitempty"`
	Notes    string `yaml:"notes,omitempty" json:"notes,omitempty"`
	Transfer string `yaml:"transfer,omitempty" json:"transfer,omitempty"`
}

// AccountTypes are the account types the ledger accepts.
var AccountTypes = []string{"checking", "savings", "credit", "investment", "mortgage", "debt", "other"}

// Load reads a config file. The format follows the extension: .yaml, .yml or
// .json. Any other extension is rejected before the file is read.
func Load(path string) (*Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var unmarshal func([]byte, any) error
	switch ext {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	case ".json":
		unmarshal = json.Unmarshal
	default:
		return nil, fmt.Errorf("invalid config file %s: extension must be .yaml, .yml or .json", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Dir is the directory account folders and output files resolve against.
func (c *Config) Dir() string {
	return filepath.Dir(c.Path)
}

// Resolve returns p relative to the config directory unless it is absolute.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// Account returns the account named name.
func (c *Config) Account(name string) (Account, bool) {
	for _, a := range c.Accounts {
		if a.Name == name {
			return a, true
		}
	}
	return Account{}, false
}

// Validate checks the config for mistakes that would otherwise surface
// halfway through a ledger mutation.
func (c *Config) Validate() error {
	var errs []string

	if c.SyncID == "" {
		errs = append(errs, "sync_id is required")
	}

	if _, err := rules.Compile(c.Categories); err != nil {
		errs = append(errs, "categories: "+err.Error())
	}
	seenCat := make(map[string]bool, len(c.Categories))
	for _, r := range c.Categories {
		if r.Name != "" && seenCat[r.Name] {
			errs = append(errs, fmt.Sprintf("category %q is defined twice", r.Name))
		}
		seenCat[r.Name] = true
	}

	seen := make(map[string]bool, len(c.Accounts))
	for i, a := range c.Accounts {
		label := fmt.Sprintf("account %d", i+1)
		if a.Name != "" {
			label = fmt.Sprintf("account %q", a.Name)
		}
		switch {
		case a.Name == "":
			errs = append(errs, label+": name is required")
		case seen[a.Name]:
			errs = append(errs, label+" is defined twice")
		}
		seen[a.Name] = true

		if !validType(a.Type) {
			errs = append(errs, fmt.Sprintf("%s: type %q must be one of %s", label, a.Type, strings.Join(AccountTypes, ", ")))
		}
		if a.Folder != "" && a.Parser == "" {
			errs = append(errs, label+": folder needs a parser")
		}
		if _, err := a.Filter.Compile(); err != nil {
			errs = append(errs, fmt.Sprintf("%s: filter: %v", label, err))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Path: c.Path, Problems: errs}
	}
	return nil
}

func validType(t string) bool {
	for _, v := range AccountTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ValidationError lists every problem found in a config file.
type ValidationError struct {
	Path     string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s:\n  %s", e.Path, strings.Join(e.Problems, "\n  "))
}
