// Package container provides dependency injection for the nabtrade-xero application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/nabtrade-xero/internal/config"
	"fjacquet/nabtrade-xero/internal/converter"
	"fjacquet/nabtrade-xero/internal/logging"
	"fjacquet/nabtrade-xero/internal/nabtradeparser"
	"fjacquet/nabtrade-xero/internal/report"

	"github.com/spf13/afero"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	fs        afero.Fs
	parser    *nabtradeparser.Parser
	converter *converter.StatementConverter
	reporter  *report.ReportGenerator
}

// NewContainer creates and wires all application dependencies against the
// operating system filesystem and a logger built from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithFs(cfg, afero.NewOsFs(), config.NewLogger(cfg))
}

// NewContainerWithFs wires the dependencies on top of the given filesystem and
// logger. Tests use it with an in-memory filesystem.
func NewContainerWithFs(cfg *config.Config, afs afero.Fs, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if afs == nil {
		return nil, fmt.Errorf("filesystem cannot be nil")
	}
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	p := nabtradeparser.NewParser(logger, cfg.Delimiter())

	conv := converter.NewStatementConverter(afs, p, logger, converter.Options{
		Convention:      cfg.SignConvention(),
		StrictExtension: cfg.Convert.StrictExtension,
		ContinueOnError: cfg.Convert.ContinueOnError,
		BackupSuffix:    cfg.Convert.BackupSuffix,
		Delimiter:       cfg.Delimiter(),
	})

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldConvention, Value: cfg.SignConvention().String()},
		logging.Field{Key: logging.FieldDelimiter, Value: cfg.CSV.Delimiter})

	return &Container{
		logger:    logger,
		config:    cfg,
		fs:        afs,
		parser:    p,
		converter: conv,
		reporter:  report.NewReportGenerator(logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetFs returns the filesystem every component works on.
func (c *Container) GetFs() afero.Fs {
	return c.fs
}

// GetParser returns the NAB Trade statement parser.
func (c *Container) GetParser() *nabtradeparser.Parser {
	return c.parser
}

// GetConverter returns the statement converter.
func (c *Container) GetConverter() *converter.StatementConverter {
	return c.converter
}

// GetReportGenerator returns the run report generator.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reporter
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
