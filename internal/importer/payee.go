package importer

import "strings"

// payeeRule picks the payee out of a comma-joined booking text. lead is the
// untrimmed first segment; segs are all segments, trimmed.
type payeeRule struct {
	match  func(lead string, segs []string) bool
	choose func(segs []string) string
}

func leadIn(tokens ...string) func(string, []string) bool {
	return func(lead string, _ []string) bool {
		for _, t := range tokens {
			if lead == t {
				return true
			}
		}
		return false
	}
}

func segment(i int) func([]string) string {
	return func(segs []string) string {
		if i >= len(segs) {
			return ""
		}
		return segs[i]
	}
}

// creditSuissePayeeRules is evaluated top-down; the first match chooses.
var creditSuissePayeeRules = []payeeRule{
	{
		match: leadIn(
			"Payment QR-bill ",
			"Direct debit collection ",
			"Clearing payment ",
			"Payment order ",
			"Payment domestic - ISR ",
			"Internal Book Transfer ",
		),
		choose: segment(1),
	},
	{
		match: leadIn("TWINT Payment ", "TWINT Credit "),
		choose: func(segs []string) string {
			if strings.HasPrefix(segment(2)(segs), "vom") {
				return segment(1)(segs)
			}
			end := min(3, len(segs))
			return strings.Join(segs[1:end], ", ")
		},
	},
	{
		match: func(lead string, segs []string) bool {
			return len(segs) == 1 ||
				strings.Contains(lead, "withdrawal") ||
				lead == "Balance of closing entries "
		},
		choose: segment(0),
	},
	{match: leadIn("Debit card point of sale payment CHF "), choose: segment(2)},
	{match: leadIn("SEPA payment outgoing "), choose: segment(4)},
}

// creditSuissePayee reconstructs the payee from a Credit Suisse booking text.
// Unknown leading tokens, and selections that come out empty, fall back to the
// first segment.
func creditSuissePayee(text string) string {
	raw := strings.Split(text, ",")
	lead := raw[0]
	segs := make([]string, len(raw))
	for i, s := range raw {
		segs[i] = strings.TrimSpace(s)
	}

	for _, rule := range creditSuissePayeeRules {
		if !rule.match(lead, segs) {
			continue
		}
		if payee := rule.choose(segs); payee != "" {
			return payee
		}
		break
	}

	if segs[0] != "" {
		return segs[0]
	}
	return strings.TrimSpace(text)
}

// firstPayee returns the first candidate that is not blank, trimmed. A row
// with no usable text at all is an errNoPayee.
func firstPayee(candidates ...string) (string, error) {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c, nil
		}
	}
	return "", errNoPayee
}
