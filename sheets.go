package main

import (
	"strconv"
	"strings"
	"time"
)

// Tabular exports arrive as tab-separated text pasted out of a
// spreadsheet. All three parsers tolerate ragged rows, blank cells, and
// an invisible marker glued onto the header's first cell.

// GridLog holds the recognized tokens of the dated grid export.
type GridLog struct {
	Infractions []DatedInfraction
	WorkOffs    []WorkOffRecord
}

func splitRows(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, "\t")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		rows = append(rows, cells)
	}
	return rows
}

// stripInvisibleMarker removes the zero-width junk some spreadsheet UIs
// prepend to the first copied cell.
func stripInvisibleMarker(s string) string {
	return strings.TrimLeft(s, "\ufeff\u200b\u200e\u00a0")
}

// ParseGridLog parses the dated grid export. The header row is either
// all date columns or a name-column placeholder followed by date
// columns; which one is detected by whether the first header cell parses
// as a date. Body rows are an employee name plus one cell per date;
// recognized infraction tokens and work-off tokens are collected, all
// other cell content is ignored.
func ParseGridLog(text string, refYear int) GridLog {
	var out GridLog
	rows := splitRows(text)
	if len(rows) == 0 {
		return out
	}

	header := rows[0]
	header[0] = stripInvisibleMarker(header[0])

	// Offset from a body cell index to its header date cell. When the
	// header has no name placeholder, body column j lines up with header
	// column j-1.
	offset := 0
	if _, firstIsDate := parseFlexibleDate(header[0], refYear); firstIsDate {
		offset = -1
	}

	dates := make(map[int]time.Time)
	for i, cell := range header {
		if d, ok := parseFlexibleDate(cell, refYear); ok {
			dates[i] = d
		}
	}

	for _, row := range rows[1:] {
		name := stripInvisibleMarker(row[0])
		if name == "" {
			continue
		}
		key := MatchKey(name)
		for j := 1; j < len(row); j++ {
			date, ok := dates[j+offset]
			if !ok {
				continue
			}
			switch cell := row[j]; {
			case cell == CodeWO || cell == CodeWOHost:
				out.WorkOffs = append(out.WorkOffs, WorkOffRecord{Key: key, Date: date, Source: "grid"})
			case isGridInfractionToken(cell):
				out.Infractions = append(out.Infractions, DatedInfraction{Name: name, Key: key, Date: date, Code: cell})
			}
		}
	}
	return out
}

func isGridInfractionToken(cell string) bool {
	switch cell {
	case CodeNSC, CodeNSLC, CodeNSNC, CodeNSS, CodeNSLS:
		return true
	}
	return false
}

// summaryColumns is the fixed column order of the summary counters
// export, after the name column.
var summaryColumns = []string{CodeNSC, CodeNSLC, CodeNSNC, CodeNSS, CodeNSLS, CodeCoupon, CodeBreak}

// ParseSummaryList parses the per-employee summary counters export:
// header row, then one row per employee with fixed-position numeric
// counters and a trailing total. Non-numeric or absent cells count as
// zero.
func ParseSummaryList(text string) []EmployeeAggregate {
	rows := splitRows(text)
	if len(rows) < 2 {
		return nil
	}
	var out []EmployeeAggregate
	for _, row := range rows[1:] {
		name := stripInvisibleMarker(row[0])
		if name == "" {
			continue
		}
		agg := EmployeeAggregate{Name: name, Counts: make(map[string]int)}
		for i, code := range summaryColumns {
			agg.Counts[code] = cellInt(row, i+1)
		}
		agg.TotalPoints = cellInt(row, len(summaryColumns)+1)
		out = append(out, agg)
	}
	return out
}

func cellInt(row []string, i int) int {
	if i >= len(row) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(row[i]))
	if err != nil {
		return 0
	}
	return n
}

// workOffSheetLabelWords flag header and section-label rows in the
// work-off-expiration export.
var workOffSheetLabelWords = []string{"name", "date", "work", "expir", "full", "partial", "door", "shift"}

func looksLikeWorkOffLabel(s string) bool {
	s = strings.ToLower(s)
	for _, w := range workOffSheetLabelWords {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// ParseWorkOffList parses the work-off-expiration export. The sheet
// carries two independent column groups: full-shift work-offs at columns
// 0-1 and partial/door-shift work-offs at columns 2-3. A row may
// populate either group, both, or neither; header and label rows are
// detected by keyword and skipped per group.
func ParseWorkOffList(text string, refYear int) []WorkOffRecord {
	var out []WorkOffRecord
	for _, row := range splitRows(text) {
		row[0] = stripInvisibleMarker(row[0])
		out = appendWorkOffGroup(out, row, 0, "full", refYear)
		out = appendWorkOffGroup(out, row, 2, "door", refYear)
	}
	return out
}

func appendWorkOffGroup(out []WorkOffRecord, row []string, col int, source string, refYear int) []WorkOffRecord {
	if col+1 >= len(row) {
		return out
	}
	name, dateStr := row[col], row[col+1]
	if name == "" && dateStr == "" {
		return out
	}
	if looksLikeWorkOffLabel(name) || looksLikeWorkOffLabel(dateStr) {
		return out
	}
	date, ok := parseFlexibleDate(dateStr, refYear)
	if !ok || name == "" {
		return out
	}
	return append(out, WorkOffRecord{Key: MatchKey(name), Date: date, Source: source})
}
