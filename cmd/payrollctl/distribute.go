package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/tarpworks/payroll-backend/internal/domain/dayoff"
	"go.uber.org/zap"
)

type rosterEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newDistributeCmd(a *app) *cobra.Command {
	var (
		file  string
		month int
		year  int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "distribute",
		Short: "Preview an automatic day-off distribution for a roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := a.named("distribute")

			if month < 1 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}
			if year == 0 {
				year = time.Now().Year()
			}

			var r io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			var roster []rosterEntry
			if err := json.NewDecoder(r).Decode(&roster); err != nil {
				return fmt.Errorf("decode roster: %w", err)
			}

			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			log.Debug("Distributing day offs", zap.Int("employees", len(roster)), zap.Uint64("seed", seed))

			names := make(map[string]string, len(roster))
			ids := make([]string, 0, len(roster))
			for _, e := range roster {
				names[e.ID] = e.Name
				ids = append(ids, e.ID)
			}

			assignments, err := dayoff.Distribute(ids, year, time.Month(month), rand.New(rand.NewPCG(seed, seed)))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tPERIOD\tEMPLOYEE")
			for _, as := range assignments {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", as.Date.Format("2006-01-02 Mon"), as.PayPeriod, names[as.EmployeeID])
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "roster JSON file: [{\"id\",\"name\"}]")
	cmd.Flags().IntVar(&month, "month", 0, "month (1-12)")
	cmd.Flags().IntVar(&year, "year", 0, "year, defaults to the current year")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "shuffle seed for a reproducible preview")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}
