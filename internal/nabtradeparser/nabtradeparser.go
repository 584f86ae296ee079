// Package nabtradeparser reads NAB Trade "Cash Account Transactions" CSV exports.
// The first record of an export is a title row and is discarded; every following
// record must carry exactly the six Date, Type, Description, Debit, Credit and
// Balance fields.
package nabtradeparser

import (
	"fmt"
	"io"

	"fjacquet/nabtrade-xero/internal/common"
	"fjacquet/nabtrade-xero/internal/converror"
	"fjacquet/nabtrade-xero/internal/logging"
	"fjacquet/nabtrade-xero/internal/models"

	"github.com/spf13/afero"
)

// Statement is the content of one export file.
type Statement struct {
	FilePath string
	Title    []string
	Rows     []models.NabTradeRow
	// Lines holds the input line each entry of Rows starts on.
	Lines []int
}

// Parser reads NAB Trade exports.
type Parser struct {
	logger    logging.Logger
	delimiter rune
}

// NewParser creates a parser. A zero delimiter means a comma.
func NewParser(logger logging.Logger, delimiter rune) *Parser {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if delimiter == 0 {
		delimiter = common.DefaultDelimiter
	}
	return &Parser{logger: logger, delimiter: delimiter}
}

// SetLogger replaces the parser's logger.
func (p *Parser) SetLogger(logger logging.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Parse reads an export from r. filePath is only used in errors and logs.
//
// Undecodable text yields a *converror.ParseError. A data record that does not
// have six fields, or a title row that is the Xero header this tool writes,
// yields a *converror.RowShapeError.
func (p *Parser) Parse(r io.Reader, filePath string) (*Statement, error) {
	records, err := common.ReadRecords(r, p.delimiter)
	if err != nil {
		return nil, &converror.ParseError{FilePath: filePath, Err: err}
	}

	stmt := &Statement{FilePath: filePath}
	if len(records) == 0 {
		p.logger.Debug("Statement file is empty",
			logging.Field{Key: logging.FieldFile, Value: filePath})
		return stmt, nil
	}

	title := records[0]
	if models.IsOutputHeader(title.Fields) {
		return nil, &converror.RowShapeError{
			FilePath: filePath,
			Row:      title.Line,
			Got:      len(title.Fields),
			Want:     models.InputFieldCount,
			Reason:   "file is already in Xero import format",
		}
	}
	stmt.Title = title.Fields

	for _, rec := range records[1:] {
		if len(rec.Fields) != models.InputFieldCount {
			return nil, &converror.RowShapeError{
				FilePath: filePath,
				Row:      rec.Line,
				Got:      len(rec.Fields),
				Want:     models.InputFieldCount,
			}
		}
		stmt.Rows = append(stmt.Rows, models.NewNabTradeRow(rec.Fields))
		stmt.Lines = append(stmt.Lines, rec.Line)
	}

	p.logger.Debug("Parsed statement file",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldRows, Value: len(stmt.Rows)})
	return stmt, nil
}

// ParseFile opens filePath on afs and parses it.
func (p *Parser) ParseFile(afs afero.Fs, filePath string) (*Statement, error) {
	file, err := afs.Open(filePath)
	if err != nil {
		return nil, &converror.ParseError{FilePath: filePath, Err: fmt.Errorf("error opening file: %w", err)}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			p.logger.WithError(cerr).Warn("Failed to close file",
				logging.Field{Key: logging.FieldFile, Value: filePath})
		}
	}()

	return p.Parse(file, filePath)
}

// ValidateFormat reports whether filePath parses as a NAB Trade export. Shape
// problems make it return false; I/O and decoding problems are returned as errors.
func (p *Parser) ValidateFormat(afs afero.Fs, filePath string) (bool, error) {
	_, err := p.ParseFile(afs, filePath)
	if err == nil {
		return true, nil
	}
	if _, ok := err.(*converror.RowShapeError); ok {
		p.logger.Info("File is not a NAB Trade export",
			logging.Field{Key: logging.FieldFile, Value: filePath},
			logging.Field{Key: logging.FieldKind, Value: converror.KindRowShape})
		return false, nil
	}
	return false, err
}
