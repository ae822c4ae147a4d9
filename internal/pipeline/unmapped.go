package pipeline

import (
	"sort"

	"moneydash/ingest/internal/models"

	"github.com/shopspring/decimal"
)

// UnmappedEntry summarizes one description that no mapping covers yet.
type UnmappedEntry struct {
	Description string
	Count       int
	TotalAmount decimal.Decimal
	FirstDate   string
	LastDate    string
	BankAccount string
}

// UnmappedSummary re-runs the pipeline and groups the rows that stayed
// unclassified by description, most frequent first. The result drives the
// mapping workflow: the operator maps the biggest offenders first.
func (p *Pipeline) UnmappedSummary() ([]UnmappedEntry, error) {
	combined, _, err := p.Run()
	if err != nil {
		return nil, err
	}
	return GroupUnmapped(combined), nil
}

// GroupUnmapped aggregates unmapped rows by description.
func GroupUnmapped(transactions []models.Transaction) []UnmappedEntry {
	groups := make(map[string]*UnmappedEntry)
	for i := range transactions {
		t := &transactions[i]
		if t.IsMapped() {
			continue
		}
		entry, ok := groups[t.Description]
		if !ok {
			entry = &UnmappedEntry{
				Description: t.Description,
				TotalAmount: decimal.Zero,
				FirstDate:   t.Date,
				LastDate:    t.Date,
				BankAccount: t.BankAccount,
			}
			groups[t.Description] = entry
		}
		entry.Count++
		entry.TotalAmount = entry.TotalAmount.Add(t.Amount)
		if t.Date != "" && (entry.FirstDate == "" || t.Date < entry.FirstDate) {
			entry.FirstDate = t.Date
		}
		if t.Date > entry.LastDate {
			entry.LastDate = t.Date
		}
	}

	entries := make([]UnmappedEntry, 0, len(groups))
	for _, entry := range groups {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Description < entries[j].Description
	})
	return entries
}
