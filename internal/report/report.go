// Package report renders the outcome of a conversion run as JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/nabtrade-xero/internal/converter"
	"fjacquet/nabtrade-xero/internal/fileutils"
	"fjacquet/nabtrade-xero/internal/logging"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Report is the serialised form of a converter.Result.
type Report struct {
	Directory      string         `json:"directory" yaml:"directory"`
	SignConvention string         `json:"sign_convention" yaml:"sign_convention"`
	DryRun         bool           `json:"dry_run" yaml:"dry_run"`
	GeneratedAt    time.Time      `json:"generated_at" yaml:"generated_at"`
	Processed      int            `json:"processed" yaml:"processed"`
	Failed         int            `json:"failed" yaml:"failed"`
	ElapsedMs      int64          `json:"elapsed_ms" yaml:"elapsed_ms"`
	Files          []FileEntry    `json:"files" yaml:"files"`
	Failures       []FailureEntry `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// FileEntry describes one converted file. Totals use the rounded amounts.
type FileEntry struct {
	Path        string `json:"path" yaml:"path"`
	Rows        int    `json:"rows" yaml:"rows"`
	DebitTotal  string `json:"debit_total" yaml:"debit_total"`
	CreditTotal string `json:"credit_total" yaml:"credit_total"`
	TxTotal     string `json:"tx_total" yaml:"tx_total"`
}

// FailureEntry describes a file that could not be converted.
type FailureEntry struct {
	Path  string `json:"path" yaml:"path"`
	Kind  string `json:"kind" yaml:"kind"`
	Error string `json:"error" yaml:"error"`
}

// NewReport builds a report from result.
func NewReport(result *converter.Result, generatedAt time.Time) *Report {
	r := &Report{
		Directory:      result.Directory,
		SignConvention: result.Convention.String(),
		DryRun:         result.DryRun,
		GeneratedAt:    generatedAt.UTC(),
		Processed:      result.Processed,
		Failed:         len(result.Failures),
		ElapsedMs:      result.Elapsed.Milliseconds(),
		Files:          make([]FileEntry, 0, len(result.Files)),
	}
	for _, f := range result.Files {
		r.Files = append(r.Files, FileEntry{
			Path:        f.Path,
			Rows:        f.Rows,
			DebitTotal:  f.DebitTotal.StringFixed(2),
			CreditTotal: f.CreditTotal.StringFixed(2),
			TxTotal:     f.TxTotal.StringFixed(2),
		})
	}
	for _, f := range result.Failures {
		r.Failures = append(r.Failures, FailureEntry{Path: f.Path, Kind: f.Kind, Error: f.Err.Error()})
	}
	return r
}

// FormatFromPath picks the report format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report file extension: '%s' (use .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// ReportGenerator renders and writes run reports.
type ReportGenerator struct {
	logger logging.Logger
	now    func() time.Time
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &ReportGenerator{
		logger: logger.WithField(logging.FieldComponent, "ReportGenerator"),
		now:    time.Now,
	}
}

// GenerateReport renders result in the given format (json or yaml).
func (g *ReportGenerator) GenerateReport(result *converter.Result, format string) ([]byte, error) {
	report := NewReport(result, g.now())

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON report")
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML, "yml":
		data, err := yaml.Marshal(report)
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal YAML report")
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteReport renders result and writes it to path on afs. The format follows
// the file extension.
func (g *ReportGenerator) WriteReport(afs afero.Fs, path string, result *converter.Result) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := g.GenerateReport(result, format)
	if err != nil {
		return err
	}

	err = fileutils.WriteFileAtomic(afs, path, 0644, func(w io.Writer) error {
		_, werr := w.Write(data)
		return werr
	})
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	g.logger.Info("Wrote conversion report",
		logging.Field{Key: logging.FieldReportFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: result.Processed})
	return nil
}
