// Package common provides shared CSV functionality for the combined artifact.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"moneydash/ingest/internal/fileutils"
	"moneydash/ingest/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Delimiter used for the combined artifact. Configurable because some
// spreadsheet locales expect semicolons.
var delimiter rune = ','

// SetDelimiter sets the CSV delimiter for artifact reads and writes.
func SetDelimiter(delim rune) {
	delimiter = delim
}

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// WriteTransactionsCSV writes the combined dataset to csvFile, overwriting
// any previous artifact. The write happens under an exclusive lock so
// concurrent readers never observe a partially written file; the lock is
// released on all exit paths.
func WriteTransactionsCSV(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Info("Writing combined transactions file")

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(csvFile)); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	lock := flock.New(csvFile + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("error locking output file: %w", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.WithError(err).Warn("Failed to release output file lock")
		}
	}()

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	writer := csv.NewWriter(file)
	writer.Comma = delimiter
	if err := gocsv.MarshalCSV(&transactions, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	return nil
}

// ReadTransactionsCSV reads a combined artifact back into transaction
// rows. Reporting consumers use this read-only view; corrections go
// through the mapping store and a pipeline re-run.
func ReadTransactionsCSV(csvFile string) ([]models.Transaction, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		reader := csv.NewReader(in)
		reader.Comma = delimiter
		return reader
	})

	var transactions []models.Transaction
	if err := gocsv.UnmarshalFile(file, &transactions); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Debug("Read combined transactions file")
	return transactions, nil
}
