// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical date format used in the combined dataset.
const DateLayout = "2006-01-02"

// Transaction type values derived from the amount sign.
const (
	TypeIncoming = "Incoming"
	TypeOutgoing = "Outgoing"
)

// Transaction represents one normalized row of the combined dataset.
// The csv tags define the exact column set of the combined artifact;
// an empty Date or RunningBalance means the value is absent.
type Transaction struct {
	Date              string          `csv:"Date"`           // Date in YYYY-MM-DD format, empty when unparseable
	Description       string          `csv:"Description"`    // Free-text description from the source file
	Amount            decimal.Decimal `csv:"Amount"`         // Signed amount, non-negative = inflow
	Bank              string          `csv:"Bank"`           // Short bank code from the filename
	AccountType       string          `csv:"AccountType"`    // Account type token from the filename (chk, cc, ...)
	AccountLast4      string          `csv:"AccountLast4"`   // Last four digits of the account number
	FileName          string          `csv:"FileName"`       // Basename of the source file
	RunningBalance    string          `csv:"RunningBalance"` // Running balance if the export carries one
	BankAccount       string          `csv:"BankAccount"`    // Composite "bank type last4" identifier
	PeriodYear        string          `csv:"PeriodYear"`
	PeriodMonth       string          `csv:"PeriodMonth"`   // MM-YYYY
	PeriodQuarter     string          `csv:"PeriodQuarter"` // Q{1-4}-YYYY
	AccountTypeClass  string          `csv:"AccountTypeClass"`
	Category1         string          `csv:"Category1"`
	Category2         string          `csv:"Category2"`
	Category3         string          `csv:"Category3"`
	Tags              string          `csv:"Tags"` // Comma-joined tag set
	Payer             string          `csv:"Payer"`
	Payee             string          `csv:"Payee"`
	MappedDescription string          `csv:"MappedDescription"` // Store key that produced the classification
	IsDuplicate       bool            `csv:"IsDuplicate"`
	TransactionType   string          `csv:"TransactionType"` // Incoming or Outgoing

	// Extra holds source columns that have no canonical name. They travel
	// with the row in memory but are not part of the combined artifact.
	Extra map[string]string `csv:"-"`
}

// ParsedDate returns the transaction date as time.Time.
// The second return value is false when the date is absent.
func (t *Transaction) ParsedDate() (time.Time, bool) {
	if t.Date == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// IsMapped reports whether a mapping store lookup classified this row.
func (t *Transaction) IsMapped() bool {
	return t.MappedDescription != ""
}

// ParseAmount converts a raw amount string to a decimal value.
// Currency symbols, thousands separators and surrounding whitespace are
// stripped before conversion. Bank exports disagree on all of these.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	for _, sym := range []string{"$", "€", "£", "CHF", "USD", "EUR"} {
		cleaned = strings.ReplaceAll(cleaned, sym, "")
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "'", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	// Accounting notation: (4.50) means -4.50
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + strings.TrimSuffix(strings.TrimPrefix(cleaned, "("), ")")
	}
	return decimal.NewFromString(cleaned)
}
