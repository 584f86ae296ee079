package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/nabtrade-xero/cmd/convert"
	"fjacquet/nabtrade-xero/cmd/root"
	"fjacquet/nabtrade-xero/cmd/validate"
	"fjacquet/nabtrade-xero/internal/config"
	"fjacquet/nabtrade-xero/internal/validation"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	config.LoadEnv()

	// 2. Initialize root command
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, validation.ErrUsage) {
			fmt.Fprintln(os.Stderr, root.Cmd.UsageString())
		}
		stop()
		os.Exit(1)
	}
}
