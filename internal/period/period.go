// Package period derives calendar bucket labels from transaction dates.
package period

import (
	"fmt"

	"moneydash/ingest/internal/models"
)

// Annotate fills the PeriodYear, PeriodMonth and PeriodQuarter columns
// from each transaction's date. A null date yields empty buckets.
func Annotate(transactions []models.Transaction) {
	for i := range transactions {
		date, ok := transactions[i].ParsedDate()
		if !ok {
			continue
		}
		transactions[i].PeriodYear = date.Format("2006")
		transactions[i].PeriodMonth = date.Format("01-2006")
		transactions[i].PeriodQuarter = fmt.Sprintf("Q%d-%d", Quarter(int(date.Month())), date.Year())
	}
}

// Quarter maps a month (1-12) to its calendar quarter (1-4).
func Quarter(month int) int {
	return (month-1)/3 + 1
}
