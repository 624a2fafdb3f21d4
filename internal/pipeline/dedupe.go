// Package pipeline turns statement files into categorized transactions and
// reconciles ledger categories.
package pipeline

import "github.com/cleared-dev/reconcile/internal/model"

// Dedupe collapses records sharing a DedupeKey. Each key keeps the position
// of its first occurrence and the values of its last.
func Dedupe(txns []model.RawTransaction) []model.RawTransaction {
	index := make(map[string]int, len(txns))
	out := make([]model.RawTransaction, 0, len(txns))
	for _, t := range txns {
		key := t.DedupeKey()
		if i, ok := index[key]; ok {
			out[i] = t
			continue
		}
		index[key] = len(out)
		out = append(out, t)
	}
	return out
}
