// Package ingest turns uploaded timetables into busy intervals for the
// availability engine.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arnavshah/freewindow-api-go/pkg/availability"
)

var (
	// ErrMissingColumns is returned when a header lacks a required column.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrEmptyInput is returned for a table without data rows.
	ErrEmptyInput = errors.New("no records in input")
	// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Row is one timetable line with its times still in raw form.
type Row struct {
	Line   int
	Person string
	Day    string
	Start  availability.RawTime
	End    availability.RawTime
}

const (
	colPerson = "Person"
	colDay    = "Day"
	colStart  = "Start"
	colEnd    = "End"
)

var requiredColumns = []string{colPerson, colDay, colStart, colEnd}

// Header names accepted for each column, compared case-insensitively. The
// German names match the timetables the tool was first written for.
var columnAliases = map[string]string{
	"person":  colPerson,
	"name":    colPerson,
	"day":     colDay,
	"weekday": colDay,
	"tag":     colDay,
	"start":   colStart,
	"beginn":  colStart,
	"end":     colEnd,
	"ende":    colEnd,
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(requiredColumns))
	for i, h := range header {
		name, ok := columnAliases[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s (need %s)", ErrMissingColumns, strings.Join(missing, ", "), strings.Join(requiredColumns, ", "))
	}
	return cols, nil
}

// typedTime returns the typed value of the time cell at a 1-based line and
// 0-based column when the source knows better than the cell text.
type typedTime func(line, col int) (availability.RawTime, bool)

// rowsFromRecords maps a header plus data records onto Rows. Line numbers
// count the header as line 1. typed may be nil.
func rowsFromRecords(records [][]string, typed typedTime) ([]Row, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrEmptyInput)
	}
	cols, err := columnIndex(records[0])
	if err != nil {
		return nil, err
	}
	cell := func(rec []string, col string) string {
		i := cols[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	timeCell := func(rec []string, line int, col string) availability.RawTime {
		if typed != nil {
			if v, ok := typed(line, cols[col]); ok {
				return v
			}
		}
		return availability.ParseRaw(cell(rec, col))
	}

	var rows []Row
	for n, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		line := n + 2
		rows = append(rows, Row{
			Line:   line,
			Person: cell(rec, colPerson),
			Day:    cell(rec, colDay),
			Start:  timeCell(rec, line, colStart),
			End:    timeCell(rec, line, colEnd),
		})
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Read picks the reader from the file extension. sheet only applies to XLSX
// files; empty selects the first sheet.
func Read(filename string, r io.Reader, sheet string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx", ".xlsm":
		return ReadXLSX(r, sheet)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
}

// Resolve normalizes every row's times. Rows whose times cannot be read are
// skipped with a warning; rows with neither time are dropped silently.
func Resolve(rows []Row) ([]availability.BusyInterval, []availability.Warning) {
	var (
		out      = make([]availability.BusyInterval, 0, len(rows))
		warnings []availability.Warning
	)
	for _, r := range rows {
		start, errStart := availability.Normalize(r.Start)
		end, errEnd := availability.Normalize(r.End)
		if err := errors.Join(errStart, errEnd); err != nil {
			warnings = append(warnings, availability.Warning{
				Code:   availability.WarnUnrecognizedTime,
				Person: r.Person,
				Day:    r.Day,
				Row:    r.Line,
				Detail: strings.ReplaceAll(err.Error(), "\n", "; "),
			})
			continue
		}
		if !start.IsSet() && !end.IsSet() {
			continue
		}
		if !start.IsSet() || !end.IsSet() {
			warnings = append(warnings, availability.Warning{
				Code:   availability.WarnMissingTime,
				Person: r.Person,
				Day:    r.Day,
				Row:    r.Line,
				Detail: "record has only one of start and end",
			})
			continue
		}
		out = append(out, availability.BusyInterval{
			Person: r.Person,
			Day:    r.Day,
			Start:  start,
			End:    end,
		})
	}
	return out, warnings
}
