// Package dedup flags repeated transactions across source files.
package dedup

import (
	"strings"

	"moneydash/ingest/internal/models"
)

// IdentityKey builds the composite identity of a transaction from the
// exact string form of date, amount, description, bank and last4. Two
// transactions are identical only if all five match exactly. The account
// type is deliberately excluded: two accounts at the same bank sharing
// last4 digits would collide, but classification keys the combined
// dataset the same way the source system did.
func IdentityKey(t models.Transaction) string {
	return strings.Join([]string{
		t.Date,
		t.Amount.String(),
		t.Description,
		t.Bank,
		t.AccountLast4,
	}, "_")
}

// Annotate marks every repeat of an identity key as a duplicate, keeping
// the first occurrence in input order unmarked. Duplicates are flagged,
// never dropped, so downstream consumers decide whether to exclude them.
// Returns the number of rows flagged.
func Annotate(transactions []models.Transaction) int {
	seen := make(map[string]struct{}, len(transactions))
	duplicates := 0
	for i := range transactions {
		key := IdentityKey(transactions[i])
		if _, ok := seen[key]; ok {
			transactions[i].IsDuplicate = true
			duplicates++
			continue
		}
		seen[key] = struct{}{}
		transactions[i].IsDuplicate = false
	}
	return duplicates
}
