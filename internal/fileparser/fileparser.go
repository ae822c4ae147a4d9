// Package fileparser parses one raw bank or card export file into
// normalized transaction rows plus the metadata carried by its filename.
// CSV and spreadsheet exports are supported; the two formats share the
// same header detection and column normalization rules.
package fileparser

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"moneydash/ingest/internal/dateutils"
	"moneydash/ingest/internal/models"
	"moneydash/ingest/internal/parsererror"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ParseFile parses a raw export file and returns its transaction rows and
// filename metadata. A ParseError or SchemaError means the file should be
// skipped; the caller decides whether the batch continues.
func ParseFile(path string) ([]models.Transaction, FileMetadata, error) {
	meta := ExtractFilenameMetadata(path)
	log.WithFields(logrus.Fields{
		"file":    meta.FileName,
		"bank":    meta.Bank,
		"account": meta.AccountType + " " + meta.Last4,
	}).Info("Parsing transaction file")

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		rows, err = readWorkbookRows(path)
	default:
		rows, err = readDelimitedRows(path)
	}
	if err != nil {
		return nil, meta, err
	}

	transactions, err := rowsToTransactions(path, rows, meta)
	if err != nil {
		return nil, meta, err
	}

	log.WithFields(logrus.Fields{
		"file":  meta.FileName,
		"count": len(transactions),
	}).Info("Parsed transaction file")
	return transactions, meta, nil
}

// readDelimitedRows reads a CSV file into raw rows. UTF-8 is attempted
// first; on invalid UTF-8 the content is re-decoded as Latin-1, which
// covers the remaining bank exports seen in practice.
func readDelimitedRows(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &parsererror.ParseError{FilePath: path, Format: "csv", Err: err}
	}

	if !utf8.Valid(data) {
		decoded, decodeErr := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if decodeErr != nil {
			return nil, &parsererror.ParseError{FilePath: path, Format: "csv", Err: decodeErr}
		}
		log.WithField("file", filepath.Base(path)).Debug("Decoded file as Latin-1")
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &parsererror.ParseError{FilePath: path, Format: "csv", Err: err}
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// readWorkbookRows reads the first sheet of a spreadsheet into raw rows.
func readWorkbookRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &parsererror.ParseError{FilePath: path, Format: "xlsx", Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close workbook")
		}
	}()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &parsererror.ParseError{FilePath: path, Format: "xlsx", Err: err}
	}
	return rows, nil
}

// rowsToTransactions applies header detection and column normalization to
// raw rows. Everything above the header row is discarded as preamble.
// Rows missing a parseable date or amount are dropped with a warning,
// never silently corrupted.
func rowsToTransactions(path string, rows [][]string, meta FileMetadata) ([]models.Transaction, error) {
	headerIdx := -1
	for i, row := range rows {
		if isHeaderRow(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		if len(rows) == 0 {
			return nil, &parsererror.ParseError{FilePath: path, Format: "tabular", Err: io.ErrUnexpectedEOF}
		}
		// No row names both a date and an amount column. Treat the first
		// row as the header and let column resolution decide.
		headerIdx = 0
	}

	cm := resolveColumns(rows[headerIdx])
	if cm.date < 0 {
		return nil, &parsererror.SchemaError{FilePath: path, Column: "date"}
	}
	if cm.amount < 0 {
		return nil, &parsererror.SchemaError{FilePath: path, Column: "amount"}
	}

	var transactions []models.Transaction
	for _, row := range rows[headerIdx+1:] {
		if isEmptyRow(row) {
			continue
		}

		tx := models.Transaction{
			Description:    cm.cell(row, cm.description),
			Bank:           meta.Bank,
			AccountType:    meta.AccountType,
			AccountLast4:   meta.Last4,
			FileName:       meta.FileName,
			RunningBalance: cm.cell(row, cm.runningBal),
			Extra:          cm.extras(row),
		}

		rawDate := cm.cell(row, cm.date)
		if parsed, err := dateutils.ParseDate(rawDate); err == nil {
			tx.Date = dateutils.ToISODate(parsed)
		}

		rawAmount := cm.cell(row, cm.amount)
		amount, err := models.ParseAmount(rawAmount)
		if err != nil || tx.Date == "" {
			log.WithFields(logrus.Fields{
				"file":   meta.FileName,
				"date":   rawDate,
				"amount": rawAmount,
			}).Warn("Dropping row without a valid date and amount")
			continue
		}
		tx.Amount = amount

		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
