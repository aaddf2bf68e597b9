package ingest

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arnavshah/freewindow-api-go/pkg/availability"
)

// ReadXLSX reads the named sheet, or the first one when sheet is empty.
// Cells with a date or time number format are read from their serial value,
// whatever their display format; other cells are read as displayed.
func ReadXLSX(r io.Reader, sheet string) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrEmptyInput)
		}
		sheet = sheets[0]
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rowsFromRecords(records, func(line, col int) (availability.RawTime, bool) {
		return clockCell(f, sheet, line, col)
	})
}

func clockCell(f *excelize.File, sheet string, line, col int) (availability.RawTime, bool) {
	cell, err := excelize.CoordinatesToCellName(col+1, line)
	if err != nil {
		return availability.RawTime{}, false
	}
	raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil || strings.TrimSpace(raw) == "" {
		return availability.RawTime{}, false
	}

	if typ, err := f.GetCellType(sheet, cell); err == nil && typ == excelize.CellTypeDate {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return availability.ClockTime(t), true
			}
		}
		return availability.RawTime{}, false
	}

	if !dateFormatted(f, sheet, cell) {
		return availability.RawTime{}, false
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return availability.RawTime{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return availability.RawTime{}, false
	}
	// Serials are binary fractions of a day; 08:30 can come back as 08:29:59.999.
	return availability.ClockTime(t.Round(time.Second)), true
}

// dateFormatted reports whether the cell's number format renders a date or a
// time. Built-in formats 14-22 and 45-47 are the date and time ones.
func dateFormatted(f *excelize.File, sheet, cell string) bool {
	idx, err := f.GetCellStyle(sheet, cell)
	if err != nil || idx == 0 {
		return false
	}
	style, err := f.GetStyle(idx)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return dateLayout(*style.CustomNumFmt)
	}
	return (style.NumFmt >= 14 && style.NumFmt <= 22) || (style.NumFmt >= 45 && style.NumFmt <= 47)
}

var (
	elapsedToken  = regexp.MustCompile(`\[(h+|m+|s+)\]`)
	literalTokens = regexp.MustCompile(`"[^"]*"|\\.|\[[^\]]*\]`)
)

// dateLayout reports whether a custom number format code has date or time
// tokens outside quoted text, escapes and bracketed colour or locale codes.
func dateLayout(code string) bool {
	code = strings.ToLower(code)
	if elapsedToken.MatchString(code) {
		return true
	}
	return strings.ContainsAny(literalTokens.ReplaceAllString(code, ""), "ydhms")
}
