package importer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// leadingNumber matches the numeric prefix a lenient float reader accepts.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// amount is a value that may have failed to parse.
type amount struct {
	v  decimal.Decimal
	ok bool
}

// parseLoose reads the leading number of s, ignoring trailing text such as a
// currency or a trailing minus. Empty or non-numeric input is not ok.
func parseLoose(s string) amount {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return amount{}
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return amount{}
	}
	return amount{v: d, ok: true}
}

// parseGerman reads "1.234,56" style amounts. Input without a decimal comma
// is read as-is.
func parseGerman(s string) amount {
	if !strings.Contains(s, ",") {
		return parseLoose(s)
	}
	clean := strings.ReplaceAll(s, ".", "")
	return parseLoose(strings.ReplaceAll(clean, ",", "."))
}

// stripThousands removes apostrophe thousands separators ("1'234.50").
func stripThousands(s string) string {
	return strings.ReplaceAll(s, "'", "")
}

func (a amount) neg() amount {
	return amount{v: a.v.Neg(), ok: a.ok}
}

func (a amount) times(sign int64) amount {
	return amount{v: a.v.Mul(decimal.NewFromInt(sign)), ok: a.ok}
}

// firstNonZero returns the first candidate that parsed to a non-zero value.
// When every candidate that parsed is zero, zero is returned; ok is false
// only when nothing parsed.
func firstNonZero(candidates ...amount) (decimal.Decimal, bool) {
	parsed := false
	for _, c := range candidates {
		if !c.ok {
			continue
		}
		parsed = true
		if !c.v.IsZero() {
			return c.v, true
		}
	}
	return decimal.Zero, parsed
}

// toCents converts a major-unit amount to cents, rounding half away from zero.
func toCents(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}
