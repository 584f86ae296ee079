// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"

	"fjacquet/nabtrade-xero/internal/container"
	"fjacquet/nabtrade-xero/internal/converter"
	"fjacquet/nabtrade-xero/internal/logging"
	"fjacquet/nabtrade-xero/internal/validation"

	"github.com/spf13/afero"
)

// DirectoryConverter converts or checks every statement file in a directory.
type DirectoryConverter interface {
	Convert(ctx context.Context, inputDir string) (*converter.Result, error)
	Check(ctx context.Context, inputDir string) (*converter.Result, error)
}

// ReportWriter writes a run report.
type ReportWriter interface {
	WriteReport(afs afero.Fs, path string, result *converter.Result) error
}

// Runner carries out the convert and validate commands.
type Runner struct {
	Fs         afero.Fs
	Converter  DirectoryConverter
	Reporter   ReportWriter
	ReportPath string
	Logger     logging.Logger
}

// NewRunner builds a Runner from the application container.
func NewRunner(c *container.Container) *Runner {
	return &Runner{
		Fs:         c.GetFs(),
		Converter:  c.GetConverter(),
		Reporter:   c.GetReportGenerator(),
		ReportPath: c.GetConfig().Report.Path,
		Logger:     c.GetLogger(),
	}
}

// Convert converts the directory named by args and prints the one-line summary
// to out. Nothing is printed when the conversion fails.
func (r *Runner) Convert(ctx context.Context, out io.Writer, args []string) error {
	result, err := r.run(ctx, args, r.Converter.Convert)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Processed %d in %d ms.\n", result.Processed, result.Elapsed.Milliseconds())
	return err
}

// Validate checks the directory named by args without modifying it.
func (r *Runner) Validate(ctx context.Context, out io.Writer, args []string) error {
	result, err := r.run(ctx, args, r.Converter.Check)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Validated %d in %d ms.\n", result.Processed, result.Elapsed.Milliseconds())
	return err
}

func (r *Runner) run(ctx context.Context, args []string,
	op func(context.Context, string) (*converter.Result, error)) (*converter.Result, error) {
	if err := validation.ValidateArgs(args); err != nil {
		return nil, err
	}
	inputDir := args[0]
	if err := validation.IsDirectory(r.Fs, inputDir); err != nil {
		return nil, err
	}

	result, err := op(ctx, inputDir)

	if r.ReportPath != "" && result != nil {
		if rerr := r.Reporter.WriteReport(r.Fs, r.ReportPath, result); rerr != nil {
			r.Logger.WithError(rerr).Error("Failed to write report",
				logging.Field{Key: logging.FieldReportFile, Value: r.ReportPath})
			if err == nil {
				err = rerr
			}
		}
	}
	return result, err
}
