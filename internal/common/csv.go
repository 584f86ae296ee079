// Package common provides the delimited-text reading and writing shared by the
// statement parser and the converter.
package common

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultDelimiter is the field separator of both the NAB Trade export and the Xero import.
const DefaultDelimiter = ','

// Record is one parsed CSV record and the input line it starts on.
type Record struct {
	Line   int
	Fields []string
}

// NewBOMStrippingReader drops a leading byte order mark and passes every other
// byte through unchanged. Bank exports saved by spreadsheet tools often carry one.
func NewBOMStrippingReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder()))
}

// ReadRecords reads every record from r. Records may have differing field
// counts; shape checks are left to the caller. Blank lines are skipped.
func ReadRecords(r io.Reader, delimiter rune) ([]Record, error) {
	reader := csv.NewReader(NewBOMStrippingReader(r))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	var records []Record
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV data: %w", err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, Record{Line: line, Fields: fields})
	}
	return records, nil
}

// WriteRows marshals rows to w using their csv struct tags for the header row.
// Fields are quoted only when they contain the delimiter, quotes or line breaks.
func WriteRows[TRow any](w io.Writer, rows []TRow, delimiter rune) error {
	if rows == nil {
		rows = []TRow{}
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
