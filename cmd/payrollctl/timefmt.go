package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
)

func newTimeFmtCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "timefmt VALUE...",
		Short: "Normalize quick-entry times (700 -> 07:00)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				formatted := payroll.FormatTimeInput(raw)
				if _, ok := payroll.ParseClock(formatted); !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t(invalid)\n", raw, formatted)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", raw, formatted)
			}
			return nil
		},
	}
}
