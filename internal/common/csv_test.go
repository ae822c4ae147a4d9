package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"moneydash/ingest/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			Date:            "2024-01-06",
			Description:     "PAYCHECK",
			Amount:          decimal.NewFromInt(2000),
			Bank:            "BANK1",
			AccountType:     "CHK",
			AccountLast4:    "1234",
			FileName:        "export.csv",
			BankAccount:     "BANK1 CHK 1234",
			PeriodYear:      "2024",
			PeriodMonth:     "01-2024",
			PeriodQuarter:   "Q1-2024",
			TransactionType: models.TypeIncoming,
		},
		{
			Date:              "2024-01-05",
			Description:       "COFFEE SHOP",
			Amount:            decimal.NewFromFloat(-4.5),
			Bank:              "BANK1",
			AccountType:       "CHK",
			AccountLast4:      "1234",
			FileName:          "export.csv",
			Category1:         "Food & Dining",
			Tags:              "essential,monthly",
			MappedDescription: "COFFEE SHOP",
			IsDuplicate:       true,
			TransactionType:   models.TypeOutgoing,
		},
	}
}

func TestWriteAndReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed", "transactions_combined.csv")

	require.NoError(t, WriteTransactionsCSV(sampleTransactions(), path))

	got, err := ReadTransactionsCSV(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "PAYCHECK", got[0].Description)
	assert.Equal(t, "2000", got[0].Amount.String())
	assert.Equal(t, "COFFEE SHOP", got[1].Description)
	assert.True(t, got[1].IsDuplicate)
	assert.Equal(t, "essential,monthly", got[1].Tags)
}

func TestWriteProducesExpectedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions_combined.csv")
	require.NoError(t, WriteTransactionsCSV(sampleTransactions(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	header := strings.SplitN(string(data), "\n", 2)[0]

	for _, column := range []string{
		"Date", "Description", "Amount", "Bank", "AccountType", "AccountLast4",
		"FileName", "RunningBalance", "PeriodYear", "PeriodMonth", "PeriodQuarter",
		"AccountTypeClass", "Category1", "Category2", "Category3", "Tags",
		"Payer", "Payee", "MappedDescription", "IsDuplicate", "TransactionType",
	} {
		assert.Contains(t, header, column)
	}
}

func TestWriteOverwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions_combined.csv")

	require.NoError(t, WriteTransactionsCSV(sampleTransactions(), path))
	require.NoError(t, WriteTransactionsCSV(sampleTransactions()[:1], path))

	got, err := ReadTransactionsCSV(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWriteNilTransactions(t *testing.T) {
	err := WriteTransactionsCSV(nil, filepath.Join(t.TempDir(), "out.csv"))
	assert.Error(t, err)
}
