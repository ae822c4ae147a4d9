package fileparser

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Defaults applied when a filename does not follow the naming convention.
// Malformed filenames degrade gracefully, they never block ingestion.
const (
	UnknownBank        = "UNKNOWN"
	UnknownAccountType = "UNKNOWN"
	UnknownLast4       = "0000"
)

const filenameDateLayout = "2006.01.02"

// Raw export filename convention (best effort, not enforced):
// <prefix>-<bank>_<accountType>_<last4>-<YYYY.MM.DD>-<YYYY.MM.DD>.<ext>
// Example: transactions-raw-import-bank1_chk_1234-2024.01.01-2024.01.31.csv
var filenamePattern = regexp.MustCompile(`([^_\-./\\]+)_([^_\-./\\]+)_(\d{4})-(\d{4}\.\d{2}\.\d{2})-(\d{4}\.\d{2}\.\d{2})`)

// FileMetadata is the account and date-range information carried by a raw
// export's filename.
type FileMetadata struct {
	FileName    string
	Bank        string
	AccountType string
	Last4       string
	StartDate   time.Time // zero when the date portion is absent or unparseable
	EndDate     time.Time
}

// ExtractFilenameMetadata parses the naming convention out of a path.
// On mismatch it returns the UNKNOWN defaults rather than failing.
func ExtractFilenameMetadata(path string) FileMetadata {
	base := filepath.Base(path)
	meta := FileMetadata{
		FileName:    base,
		Bank:        UnknownBank,
		AccountType: UnknownAccountType,
		Last4:       UnknownLast4,
	}

	matches := filenamePattern.FindStringSubmatch(base)
	if matches == nil {
		return meta
	}

	meta.Bank = strings.ToUpper(matches[1])
	meta.AccountType = strings.ToUpper(matches[2])
	meta.Last4 = matches[3]

	if start, err := time.Parse(filenameDateLayout, matches[4]); err == nil {
		meta.StartDate = start
	}
	if end, err := time.Parse(filenameDateLayout, matches[5]); err == nil {
		meta.EndDate = end
	}
	return meta
}
