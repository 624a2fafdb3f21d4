package rules

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/reconcile/internal/model"
)

// Match is a declarative transaction predicate. Every field that is set must
// hold; an empty Match accepts everything. Patterns are Go regular
// expressions searched anywhere in the field.
type Match struct {
	Text      string  `yaml:"text,omitempty" json:"text,omitempty"`
	Payee     string  `yaml:"payee,omitempty" json:"payee,omitempty"`
	Notes     string  `yaml:"notes,omitempty" json:"notes,omitempty"`
	Account   string  `yaml:"account,omitempty" json:"account,omitempty"`
	AmountMin *Amount `yaml:"amount_min,omitempty" json:"amount_min,omitempty"`
	AmountMax *Amount `yaml:"amount_max,omitempty" json:"amount_max,omitempty"`
	All       []Match `yaml:"all,omitempty" json:"all,omitempty"`
	Any       []Match `yaml:"any,omitempty" json:"any,omitempty"`
	Not       *Match  `yaml:"not,omitempty" json:"not,omitempty"`
}

// Amount is a bound in major currency units, inclusive.
type Amount struct {
	decimal.Decimal
}

// UnmarshalYAML accepts plain and quoted numbers.
func (a *Amount) UnmarshalYAML(n *yaml.Node) error {
	d, err := decimal.NewFromString(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid amount %q", n.Line, n.Value)
	}
	a.Decimal = d
	return nil
}

// cents converts the bound to minor units.
func (a *Amount) cents() int64 {
	return a.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Predicate reports whether a transaction satisfies a compiled Match.
type Predicate func(txn model.RawTransaction) bool

// Always accepts every transaction.
func Always(model.RawTransaction) bool { return true }

// Compile turns m into a Predicate. A nil Match compiles to Always.
func (m *Match) Compile() (Predicate, error) {
	if m == nil {
		return Always, nil
	}

	var preds []Predicate

	fields := []struct {
		name    string
		pattern string
		get     func(model.RawTransaction) string
	}{
		{"text", m.Text, model.RawTransaction.Text},
		{"payee", m.Payee, func(t model.RawTransaction) string { return t.PayeeName }},
		{"notes", m.Notes, func(t model.RawTransaction) string { return t.Notes }},
		{"account", m.Account, func(t model.RawTransaction) string { return t.Account }},
	}
	for _, f := range fields {
		if f.pattern == "" {
			continue
		}
		re, err := regexp.Compile(f.pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling %s pattern: %w", f.name, err)
		}
		get := f.get
		preds = append(preds, func(t model.RawTransaction) bool { return re.MatchString(get(t)) })
	}

	if m.AmountMin != nil {
		lo := m.AmountMin.cents()
		preds = append(preds, func(t model.RawTransaction) bool { return t.Amount >= lo })
	}
	if m.AmountMax != nil {
		hi := m.AmountMax.cents()
		preds = append(preds, func(t model.RawTransaction) bool { return t.Amount <= hi })
	}

	for i := range m.All {
		p, err := m.All[i].Compile()
		if err != nil {
			return nil, fmt.Errorf("all[%d]: %w", i, err)
		}
		preds = append(preds, p)
	}

	if len(m.Any) > 0 {
		alts := make([]Predicate, len(m.Any))
		for i := range m.Any {
			p, err := m.Any[i].Compile()
			if err != nil {
				return nil, fmt.Errorf("any[%d]: %w", i, err)
			}
			alts[i] = p
		}
		preds = append(preds, func(t model.RawTransaction) bool {
			for _, p := range alts {
				if p(t) {
					return true
				}
			}
			return false
		})
	}

	if m.Not != nil {
		p, err := m.Not.Compile()
		if err != nil {
			return nil, fmt.Errorf("not: %w", err)
		}
		preds = append(preds, func(t model.RawTransaction) bool { return !p(t) })
	}

	return func(t model.RawTransaction) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}
		return true
	}, nil
}
