package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/cleared-dev/reconcile/internal/config"
	"github.com/cleared-dev/reconcile/internal/model"
	"github.com/cleared-dev/reconcile/internal/rules"
)

// InvalidFilterError reports a month filter that cannot be parsed.
type InvalidFilterError struct {
	Spec string
	Err  error
}

func (e *InvalidFilterError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid month filter %q", e.Spec)
	}
	return fmt.Sprintf("invalid month filter %q: %v", e.Spec, e.Err)
}

func (e *InvalidFilterError) Unwrap() error { return e.Err }

// monthLayouts are accepted for each side of a month filter. A full date
// selects the month it falls in.
var monthLayouts = []string{"2006-01", model.DateFormat}

func parseMonth(s string) (time.Time, error) {
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a month (YYYY-MM)", s)
}

// MonthFilter builds a predicate over record dates. An empty spec accepts
// everything. "2021-01" selects January 2021. "2021-01,2021-03" selects
// January through March, and either side of the comma may be left out to
// leave that end open. Records with unparseable dates are rejected.
func MonthFilter(spec string) (rules.Predicate, error) {
	if spec == "" {
		return rules.Always, nil
	}

	startSpec, endSpec := spec, spec
	if before, after, ok := strings.Cut(spec, ","); ok {
		startSpec, endSpec = strings.TrimSpace(before), strings.TrimSpace(after)
		if startSpec == "" && endSpec == "" {
			return nil, &InvalidFilterError{Spec: spec}
		}
	}

	var start, end time.Time
	if startSpec != "" {
		m, err := parseMonth(startSpec)
		if err != nil {
			return nil, &InvalidFilterError{Spec: spec, Err: err}
		}
		start = m
	}
	if endSpec != "" {
		m, err := parseMonth(endSpec)
		if err != nil {
			return nil, &InvalidFilterError{Spec: spec, Err: err}
		}
		end = m.AddDate(0, 1, 0)
	}

	return func(t model.RawTransaction) bool {
		d, err := time.Parse(model.DateFormat, t.Date)
		if err != nil {
			return false
		}
		if !start.IsZero() && d.Before(start) {
			return false
		}
		if !end.IsZero() && !d.Before(end) {
			return false
		}
		return true
	}, nil
}

// Transform rewrites a record.
type Transform func(model.RawTransaction) model.RawTransaction

// Identity returns the record unchanged.
func Identity(t model.RawTransaction) model.RawTransaction { return t }

// AccountTransform compiles an account's transform. A nil transform is the
// identity.
func AccountTransform(tr *config.Transform) Transform {
	if tr == nil {
		return Identity
	}
	c := *tr
	return func(t model.RawTransaction) model.RawTransaction {
		if c.Negate {
			t.Amount = -t.Amount
		}
		if c.Payee != "" {
			t.PayeeName = c.Payee
		}
		if c.Notes != "" {
			t.Notes = c.Notes
		}
		if c.Transfer != "" {
			t.Transfer = c.Transfer
		}
		return t
	}
}

// and accepts a record only when every predicate does.
func and(preds ...rules.Predicate) rules.Predicate {
	return func(t model.RawTransaction) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}
		return true
	}
}
