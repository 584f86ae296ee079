// Package validate handles the validate command, a dry run of convert
package validate

import (
	"fjacquet/nabtrade-xero/cmd/common"
	"fjacquet/nabtrade-xero/cmd/root"
	"fjacquet/nabtrade-xero/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate <input-dir>",
	Short: "Check that every NAB Trade CSV export in a directory can be converted",
	Long: `Read and transform every NAB Trade CSV export in a directory without writing
anything, reporting the first file that would fail to convert.`,
	Args: root.ValidateArgs,
	RunE: validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) error {
	root.Log.Debug("Validate command called", logging.Field{Key: logging.FieldDirectory, Value: args[0]})
	return common.NewRunner(root.AppContainer).Validate(cmd.Context(), cmd.OutOrStdout(), args)
}
