package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/tarpworks/payroll-backend/internal/domain/employee"
	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
	"github.com/tarpworks/payroll-backend/internal/domain/settings"
	"go.uber.org/zap"
)

// computeInput is the file read by `payrollctl compute`. Settings fields
// override the defaults; DayOffHours stands in for stored day offs.
type computeInput struct {
	Employee struct {
		Name          string          `json:"name"`
		RatePerShift  decimal.Decimal `json:"rate_per_shift"`
		HoursPerShift float64         `json:"hours_per_shift"`
		ShiftType     string          `json:"shift_type"`
	} `json:"employee"`
	Settings    settings.UpdateSettingsRequest `json:"settings"`
	Payroll     payroll.PayrollInput           `json:"payroll"`
	DayOffHours float64                        `json:"day_off_hours"`
}

func newComputeCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute one payroll period from a JSON file (- for stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := a.named("compute")

			var r io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			result, err := compute(r)
			if err != nil {
				log.Error("Compute failed", zap.String("file", file), zap.Error(err))
				return err
			}
			log.Debug("Computed payroll",
				zap.Float64("regular_hours", result.RegularHours),
				zap.String("net_pay", result.NetPay.String()),
			)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "input JSON file")
	return cmd
}

func compute(r io.Reader) (payroll.Computation, error) {
	var in computeInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return payroll.Computation{}, fmt.Errorf("decode input: %w", err)
	}

	if err := in.Settings.Validate(); err != nil {
		return payroll.Computation{}, err
	}
	cfg := in.Settings.Apply(settings.Defaults())

	shift := employee.ShiftType(in.Employee.ShiftType)
	if shift == "" {
		shift = employee.ShiftTypeFirst
	}
	if !shift.Valid() {
		return payroll.Computation{}, fmt.Errorf("unknown shift type %q", in.Employee.ShiftType)
	}
	if !in.Employee.RatePerShift.IsPositive() {
		return payroll.Computation{}, fmt.Errorf("employee rate_per_shift must be greater than 0")
	}

	// The engine never looks the employee up; any id satisfies validation.
	if in.Payroll.EmployeeID == "" {
		in.Payroll.EmployeeID = uuid.NewString()
	}
	if err := in.Payroll.Validate(); err != nil {
		return payroll.Computation{}, err
	}

	return payroll.ComputeEarnings(payroll.EarningsInput{
		TimeEntries: in.Payroll.TimeEntries,
		Employee: employee.Employee{
			Name:          in.Employee.Name,
			RatePerShift:  in.Employee.RatePerShift,
			HoursPerShift: in.Employee.HoursPerShift,
			ShiftType:     shift,
		},
		Commissions: in.Payroll.Commissions(),
		CashAdvance: in.Payroll.CashAdvance,
		DayOffHours: in.DayOffHours,
	}, cfg), nil
}
