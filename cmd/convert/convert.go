// Package convert handles the convert command, which rewrites NAB Trade exports in place
package convert

import (
	"fjacquet/nabtrade-xero/cmd/common"
	"fjacquet/nabtrade-xero/cmd/root"
	"fjacquet/nabtrade-xero/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert <input-dir>",
	Short: "Convert every NAB Trade CSV export in a directory",
	Long: `Convert every NAB Trade CSV export in a directory into the Xero statement import
layout. Each file is rewritten in place; a backup is kept until the new file is complete.`,
	Args: root.ValidateArgs,
	RunE: convertFunc,
}

func convertFunc(cmd *cobra.Command, args []string) error {
	root.Log.Debug("Convert command called", logging.Field{Key: logging.FieldDirectory, Value: args[0]})
	return common.NewRunner(root.AppContainer).Convert(cmd.Context(), cmd.OutOrStdout(), args)
}
