// Package rules assigns categories to transactions from an ordered list of
// declarative rules.
package rules

import (
	"fmt"

	"github.com/cleared-dev/reconcile/internal/model"
)

// Rule is a category and, optionally, the predicate that assigns it. A rule
// without Match is a manual-only category.
type Rule struct {
	Name     string `yaml:"name" json:"name"`
	Group    string `yaml:"group" json:"group"`
	Match    *Match `yaml:"match,omitempty" json:"match,omitempty"`
	Transfer string `yaml:"transfer,omitempty" json:"transfer,omitempty"`
}

// Automatic reports whether the rule is evaluated by Categorize.
func (r Rule) Automatic() bool { return r.Match != nil }

type compiled struct {
	rule  Rule
	match Predicate
}

// Set is a compiled, ordered rule list.
type Set struct {
	rules []compiled
}

// Compile validates rules and compiles their predicates, keeping declaration
// order.
func Compile(rules []Rule) (*Set, error) {
	s := &Set{}
	for i, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("rule %d: name is required", i+1)
		}
		if r.Group == "" {
			return nil, fmt.Errorf("rule %q: group is required", r.Name)
		}
		if !r.Automatic() {
			continue
		}
		p, err := r.Match.Compile()
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		s.rules = append(s.rules, compiled{rule: r, match: p})
	}
	return s, nil
}

// MustCompile is Compile that panics on error. For tests and literals.
func MustCompile(rules []Rule) *Set {
	s, err := Compile(rules)
	if err != nil {
		panic(err)
	}
	return s
}

// Categorize returns txn with the category of the first matching rule. A
// matching rule with a transfer also sets the transfer payee. When nothing
// matches txn is returned unchanged.
func (s *Set) Categorize(txn model.RawTransaction) model.RawTransaction {
	if r, ok := s.Find(txn); ok {
		txn.Category = r.Name
		if r.Transfer != "" {
			txn.Transfer = r.Transfer
		}
	}
	return txn
}

// Find returns the first rule matching txn.
func (s *Set) Find(txn model.RawTransaction) (Rule, bool) {
	if s == nil {
		return Rule{}, false
	}
	for _, c := range s.rules {
		if c.match(txn) {
			return c.rule, true
		}
	}
	return Rule{}, false
}

// Apply categorizes every transaction into a new slice.
func (s *Set) Apply(txns []model.RawTransaction) []model.RawTransaction {
	out := make([]model.RawTransaction, len(txns))
	for i, t := range txns {
		out[i] = s.Categorize(t)
	}
	return out
}

// Len returns the number of automatic rules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}
