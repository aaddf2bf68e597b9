package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV reads a comma or semicolon separated timetable with a header row.
func ReadCSV(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rowsFromRecords(records, nil)
}

// Spreadsheet exports in German locales use ';' because ',' is the decimal
// separator.
func sniffDelimiter(data []byte) rune {
	commas, semis := 0, 0
	for _, b := range data {
		if b == '\n' {
			break
		}
		switch b {
		case ',':
			commas++
		case ';':
			semis++
		}
	}
	if semis > commas {
		return ';'
	}
	return ','
}
