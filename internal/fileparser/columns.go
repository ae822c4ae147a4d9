package fileparser

import "strings"

// columnMap records where the canonical columns live in a header row.
// An index of -1 means the column is absent.
type columnMap struct {
	date        int
	amount      int
	description int
	runningBal  int
	header      []string
}

// Column detection is rule based, not positional: headers are matched by
// name pattern so exports can reorder or rename columns freely.
func isDateLabel(label string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(label)), "date")
}

func isAmountLabel(label string) bool {
	return strings.Contains(strings.ToLower(label), "amount")
}

func isDescriptionLabel(label string) bool {
	return strings.Contains(strings.ToLower(label), "description")
}

func isRunningBalanceLabel(label string) bool {
	lower := strings.ToLower(label)
	return strings.Contains(lower, "running") && strings.Contains(lower, "bal")
}

// isHeaderRow reports whether a row looks like the column header: it must
// name both a date-like and an amount-like column. Spreadsheet exports
// often carry summary preamble above the real header.
func isHeaderRow(row []string) bool {
	hasDate, hasAmount := false, false
	for _, cell := range row {
		if isDateLabel(cell) {
			hasDate = true
		}
		if isAmountLabel(cell) {
			hasAmount = true
		}
	}
	return hasDate && hasAmount
}

// resolveColumns locates the canonical columns in a header row. The first
// matching label wins for each canonical name.
func resolveColumns(header []string) columnMap {
	cm := columnMap{date: -1, amount: -1, description: -1, runningBal: -1, header: header}
	for i, label := range header {
		switch {
		case cm.date < 0 && isDateLabel(label):
			cm.date = i
		case cm.amount < 0 && isAmountLabel(label):
			cm.amount = i
		case cm.description < 0 && isDescriptionLabel(label):
			cm.description = i
		case cm.runningBal < 0 && isRunningBalanceLabel(label):
			cm.runningBal = i
		}
	}
	return cm
}

// extras collects the source columns that were not mapped to a canonical
// name. They are preserved alongside the canonical fields.
func (cm columnMap) extras(row []string) map[string]string {
	var extra map[string]string
	for i, label := range cm.header {
		if i == cm.date || i == cm.amount || i == cm.description || i == cm.runningBal {
			continue
		}
		if i >= len(row) {
			continue
		}
		name := strings.TrimSpace(label)
		value := strings.TrimSpace(row[i])
		if name == "" || value == "" {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[name] = value
	}
	return extra
}

func (cm columnMap) cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
