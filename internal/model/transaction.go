package model

import (
	"strconv"
	"strings"
)

// DateFormat is the normalized ISO date layout every parser emits.
const DateFormat = "2006-01-02"

// RawTransaction is the common record every statement parser produces.
type RawTransaction struct {
	Date      string `json:"date"`       // YYYY-MM-DD value date
	PayeeName string `json:"payee_name"`
	Amount    int64  `json:"amount"`     // cents, positive = inflow
	Notes     string `json:"notes,omitempty"`
	Account   string `json:"account,omitempty"`
	Category  string `json:"category,omitempty"`
	Transfer  string `json:"transfer,omitempty"` // transfer payee name
}

// Text is the string rule predicates are matched against.
func (t RawTransaction) Text() string {
	return t.PayeeName + " | " + t.Notes
}

// DedupeKey joins date, amount, payee and notes with "|". Empty notes are
// left out of the key.
func (t RawTransaction) DedupeKey() string {
	parts := []string{t.Date, strconv.FormatInt(t.Amount, 10), t.PayeeName}
	if t.Notes != "" {
		parts = append(parts, t.Notes)
	}
	return strings.Join(parts, "|")
}

// MatchKey identifies a transaction across a reference file and the ledger.
func (t RawTransaction) MatchKey() string {
	return t.Date + " | " + t.PayeeName + " | " + t.Notes
}

// LedgerTransaction is a ledger transaction with ids translated back to names.
type LedgerTransaction struct {
	ID string `json:"id"`
	RawTransaction
	TransferID string `json:"transfer_id,omitempty"`
	IsParent   bool   `json:"is_parent,omitempty"`
}

// Categorizable reports whether the categorize workflows may touch t.
// Transfers and split parents are excluded.
func (t LedgerTransaction) Categorizable() bool {
	return t.TransferID == "" && !t.IsParent
}
