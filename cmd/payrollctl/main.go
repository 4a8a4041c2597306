package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tarpworks/payroll-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

const appVersion = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	debug bool
	log   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "payrollctl",
		Short:         "Offline payroll calculator for the tarp shop",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(a.debug)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "verbose development logging")
	root.SetErr(os.Stderr)

	root.AddCommand(
		newComputeCmd(a),
		newTimeFmtCmd(a),
		newDistributeCmd(a),
	)
	return root
}

func (a *app) named(component string) *zap.Logger {
	return logger.Named(a.log, component)
}
