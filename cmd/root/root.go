// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/nabtrade-xero/cmd/common"
	"fjacquet/nabtrade-xero/internal/config"
	"fjacquet/nabtrade-xero/internal/container"
	"fjacquet/nabtrade-xero/internal/logging"
	"fjacquet/nabtrade-xero/internal/models"
	"fjacquet/nabtrade-xero/internal/validation"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands. It is replaced by the
	// configured logger before any command runs.
	Log = logging.NewDiscardLogger()

	// AppContainer holds the dependencies built for the running command.
	AppContainer *container.Container

	// ConfigFile is the --config flag value.
	ConfigFile string

	initOnce sync.Once

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "nabtrade-xero <input-dir>",
		Short: "Convert NAB Trade cash account CSV exports into Xero statement imports.",
		Long: `nabtrade-xero rewrites every NAB Trade "Cash Account Transactions" CSV export
in a directory, in place, into the layout expected by Xero's bank statement import.
A Tx column is derived from the Debit and Credit columns of each row.`,
		Args:              ValidateArgs,
		PersistentPreRunE: initContainer,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.NewRunner(AppContainer).Convert(cmd.Context(), cmd.OutOrStdout(), args)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if AppContainer != nil {
				return AppContainer.Close()
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Init initializes the root command flags. Calling it again is a no-op.
func Init() {
	initOnce.Do(func() {
		defaults := config.DefaultConfig()
		flags := Cmd.PersistentFlags()

		flags.StringVar(&ConfigFile, "config", "", "Config file (default: ./config.yaml or $HOME/.nabtrade-xero/config.yaml)")
		flags.String("log-level", defaults.Log.Level, "Log level (trace, debug, info, warn, error)")
		flags.String("log-format", defaults.Log.Format, "Log format (text or json)")
		flags.String("delimiter", defaults.CSV.Delimiter, "CSV field delimiter")
		flags.String("sign-convention", defaults.Convert.SignConvention,
			fmt.Sprintf("How Tx is derived: '%s' (Credit - Debit) or '%s' (Credit + Debit)",
				models.SignConventionSubtract, models.SignConventionAdd))
		flags.Bool("strict-extension", defaults.Convert.StrictExtension, "Only convert files ending in '.csv'")
		flags.Bool("continue-on-error", defaults.Convert.ContinueOnError, "Keep converting the remaining files after a failure")
		flags.String("backup-suffix", defaults.Convert.BackupSuffix, "Suffix of the backup kept while a file is rewritten")
		flags.String("report", defaults.Report.Path, "Write a run report to this .json or .yaml file")
	})
}

// ValidateArgs is the positional argument check shared by the commands that
// take an input directory.
func ValidateArgs(_ *cobra.Command, args []string) error {
	return validation.ValidateArgs(args)
}

func initContainer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.InitializeConfig(ConfigFile, cmd.Flags())
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	AppContainer = c
	Log = c.GetLogger()
	Log.Debug("Configuration loaded",
		logging.Field{Key: logging.FieldConfigFile, Value: ConfigFile},
		logging.Field{Key: logging.FieldOperation, Value: cmd.Name()})
	return nil
}
