// Package converter rewrites every NAB Trade export in a directory into a Xero
// statement import file, in place.
//
// Each file goes through read, transform, backup, write and cleanup. The
// original is renamed to its backup before the converted file is moved into
// place, and the backup is deleted once the new file exists.
package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"fjacquet/nabtrade-xero/internal/common"
	"fjacquet/nabtrade-xero/internal/converror"
	"fjacquet/nabtrade-xero/internal/fileutils"
	"fjacquet/nabtrade-xero/internal/logging"
	"fjacquet/nabtrade-xero/internal/models"
	"fjacquet/nabtrade-xero/internal/nabtradeparser"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
)

// StatementParser reads one export file.
type StatementParser interface {
	ParseFile(afs afero.Fs, filePath string) (*nabtradeparser.Statement, error)
}

// Options tune a conversion run. The zero value is the default behaviour.
type Options struct {
	Convention      models.SignConvention
	StrictExtension bool
	ContinueOnError bool
	BackupSuffix    string
	Delimiter       rune
}

// FileResult describes one converted (or checked) file.
type FileResult struct {
	Path        string
	Rows        int
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
	TxTotal     decimal.Decimal
}

// FileFailure records a file that failed while ContinueOnError was set.
type FileFailure struct {
	Path string
	Kind string
	Err  error
}

// Result summarises a run over one directory.
type Result struct {
	Directory  string
	Convention models.SignConvention
	DryRun     bool
	Files      []FileResult
	Failures   []FileFailure
	Processed  int
	Elapsed    time.Duration
}

// StatementConverter converts the statement files of a directory.
type StatementConverter struct {
	fs     afero.Fs
	parser StatementParser
	logger logging.Logger
	opts   Options
}

// NewStatementConverter creates a converter working on afs.
func NewStatementConverter(afs afero.Fs, parser StatementParser, logger logging.Logger, opts Options) *StatementConverter {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if opts.Convention == "" {
		opts.Convention = models.DefaultSignConvention
	}
	if opts.BackupSuffix == "" {
		opts.BackupSuffix = fileutils.DefaultBackupSuffix
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = common.DefaultDelimiter
	}
	return &StatementConverter{
		fs:     afs,
		parser: parser,
		logger: logger.WithField(logging.FieldComponent, "StatementConverter"),
		opts:   opts,
	}
}

// Options returns the effective options.
func (c *StatementConverter) Options() Options {
	return c.opts
}

// Convert rewrites every statement file in inputDir. Files are handled one at
// a time in listing order and ctx is only checked between files.
//
// The returned Result is non-nil even on error and holds the files completed
// so far. The first failure stops the run unless ContinueOnError is set, in
// which case all failures are joined into the returned error.
func (c *StatementConverter) Convert(ctx context.Context, inputDir string) (*Result, error) {
	return c.run(ctx, inputDir, false)
}

// Check runs the read and transform steps on every statement file in inputDir
// and verifies no backup is in the way, without touching the filesystem.
func (c *StatementConverter) Check(ctx context.Context, inputDir string) (*Result, error) {
	return c.run(ctx, inputDir, true)
}

func (c *StatementConverter) run(ctx context.Context, inputDir string, dryRun bool) (*Result, error) {
	start := time.Now()
	result := &Result{Directory: inputDir, Convention: c.opts.Convention, DryRun: dryRun}

	files, err := fileutils.ListStatementFiles(c.fs, inputDir, c.opts.StrictExtension)
	if err != nil {
		result.Elapsed = time.Since(start)
		return result, &converror.DiscoveryError{Dir: inputDir, Err: err}
	}

	c.logger.Info("Found statement files",
		logging.Field{Key: logging.FieldDirectory, Value: inputDir},
		logging.Field{Key: logging.FieldCount, Value: len(files)},
		logging.Field{Key: logging.FieldConvention, Value: c.opts.Convention.String()})

	var errs []error
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("conversion interrupted: %w", err))
			break
		}

		var fr FileResult
		if dryRun {
			fr, err = c.checkFile(file)
		} else {
			fr, err = c.convertFile(file)
		}
		if err != nil {
			kind := converror.Kind(err)
			c.logger.WithError(err).Error("Failed to convert statement file",
				logging.Field{Key: logging.FieldFile, Value: file},
				logging.Field{Key: logging.FieldKind, Value: kind})
			if !c.opts.ContinueOnError {
				result.Elapsed = time.Since(start)
				return result, err
			}
			result.Failures = append(result.Failures, FileFailure{Path: file, Kind: kind, Err: err})
			errs = append(errs, err)
			continue
		}

		result.Files = append(result.Files, fr)
		result.Processed++
	}

	result.Elapsed = time.Since(start)
	c.logger.Info("Conversion finished",
		logging.Field{Key: logging.FieldDirectory, Value: inputDir},
		logging.Field{Key: logging.FieldCount, Value: result.Processed},
		logging.Field{Key: logging.FieldFailed, Value: len(result.Failures)},
		logging.Field{Key: logging.FieldDuration, Value: result.Elapsed.Milliseconds()})

	return result, errors.Join(errs...)
}

func (c *StatementConverter) convertFile(filePath string) (FileResult, error) {
	info, err := c.fs.Stat(filePath)
	if err != nil {
		return FileResult{}, &converror.ParseError{FilePath: filePath, Err: err}
	}

	rows, fr, err := c.load(filePath)
	if err != nil {
		return fr, err
	}

	backupPath := fileutils.BackupPath(filePath, c.opts.BackupSuffix)
	if err := fileutils.Backup(c.fs, filePath, backupPath); err != nil {
		return fr, &converror.BackupError{FilePath: filePath, BackupPath: backupPath, Err: err}
	}

	err = fileutils.WriteFileAtomic(c.fs, filePath, info.Mode().Perm(), func(w io.Writer) error {
		return common.WriteRows(w, rows, c.opts.Delimiter)
	})
	if err != nil {
		return fr, &converror.WriteError{FilePath: filePath, BackupPath: backupPath, Err: err}
	}

	if err := fileutils.RemoveFile(c.fs, backupPath); err != nil {
		return fr, &converror.CleanupError{FilePath: filePath, BackupPath: backupPath, Err: err}
	}

	c.logger.Info("Converted statement file",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldRows, Value: fr.Rows})
	return fr, nil
}

func (c *StatementConverter) checkFile(filePath string) (FileResult, error) {
	_, fr, err := c.load(filePath)
	if err != nil {
		return fr, err
	}

	backupPath := fileutils.BackupPath(filePath, c.opts.BackupSuffix)
	if fileutils.FileExists(c.fs, backupPath) {
		return fr, &converror.BackupError{
			FilePath:   filePath,
			BackupPath: backupPath,
			Err:        fmt.Errorf("backup file already exists: %w", fs.ErrExist),
		}
	}

	c.logger.Info("Statement file is convertible",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldRows, Value: fr.Rows})
	return fr, nil
}

func (c *StatementConverter) load(filePath string) ([]models.XeroRow, FileResult, error) {
	stmt, err := c.parser.ParseFile(c.fs, filePath)
	if err != nil {
		return nil, FileResult{Path: filePath}, err
	}
	return Transform(stmt, c.opts.Convention)
}

// Transform derives the Xero rows of stmt. Debit and Credit are parsed and
// rounded to two places, then combined into Tx according to convention.
func Transform(stmt *nabtradeparser.Statement, convention models.SignConvention) ([]models.XeroRow, FileResult, error) {
	fr := FileResult{
		Path:        stmt.FilePath,
		DebitTotal:  decimal.Zero,
		CreditTotal: decimal.Zero,
		TxTotal:     decimal.Zero,
	}
	rows := make([]models.XeroRow, 0, len(stmt.Rows))

	for i, row := range stmt.Rows {
		line := 0
		if i < len(stmt.Lines) {
			line = stmt.Lines[i]
		}

		debit, err := models.ParseAmount(row.Debit)
		if err != nil {
			return nil, fr, &converror.AmountError{
				FilePath: stmt.FilePath, Row: line, Column: models.ColumnDebit, Value: row.Debit, Err: err,
			}
		}
		credit, err := models.ParseAmount(row.Credit)
		if err != nil {
			return nil, fr, &converror.AmountError{
				FilePath: stmt.FilePath, Row: line, Column: models.ColumnCredit, Value: row.Credit, Err: err,
			}
		}

		tx := convention.Tx(debit, credit)
		rows = append(rows, row.ToXero(models.FormatAmount(tx)))

		fr.DebitTotal = fr.DebitTotal.Add(debit)
		fr.CreditTotal = fr.CreditTotal.Add(credit)
		fr.TxTotal = fr.TxTotal.Add(tx)
	}

	fr.Rows = len(rows)
	return rows, fr, nil
}
