package payroll

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/tarpworks/payroll-backend/internal/domain/employee"
	"github.com/tarpworks/payroll-backend/internal/domain/settings"
)

// EarningsInput is everything the aggregator needs for one employee and period.
type EarningsInput struct {
	TimeEntries TimeEntries
	Employee    employee.Employee
	Commissions CommissionCounts
	CashAdvance decimal.Decimal
	DayOffHours float64
}

// Computation is the aggregator's output. Money is rounded to 2 places.
type Computation struct {
	DayOffHours      float64         `json:"day_off_hours"`
	RegularHours     float64         `json:"regular_hours"`
	OvertimeHours    float64         `json:"overtime_hours"`
	LateMinutes      int             `json:"late_minutes"`
	HourlyRate       decimal.Decimal `json:"hourly_rate"`
	RegularPay       decimal.Decimal `json:"regular_pay"`
	OvertimePay      decimal.Decimal `json:"overtime_pay"`
	GrossPay         decimal.Decimal `json:"gross_pay"`
	TotalCommissions decimal.Decimal `json:"total_commissions"`
	CashAdvance      decimal.Decimal `json:"cash_advance"`
	LateDeduction    decimal.Decimal `json:"late_deduction"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	NetPay           decimal.Decimal `json:"net_pay"`
}

// ComputeEarnings combines worked hours, day-off hours, commissions and
// deductions into gross and net pay. Overtime is paid at the regular hourly
// rate. It reads nothing but its arguments.
func ComputeEarnings(in EarningsInput, cfg settings.Settings) Computation {
	hoursPerShift := in.Employee.ShiftHours(cfg.DefaultHoursPerShift)

	regularMin, overtimeMin := periodMinutes(in.TimeEntries, hoursPerShift)
	dayOffMin := int(math.Round(in.DayOffHours * 60))
	regularMin += dayOffMin

	regularPay := payForMinutes(in.Employee.RatePerShift, regularMin, hoursPerShift)
	overtimePay := payForMinutes(in.Employee.RatePerShift, overtimeMin, hoursPerShift)
	gross := regularPay.Add(overtimePay)

	commissions := TotalCommissions(in.Commissions, cfg)

	lateMinutes := PeriodLateMinutes(in.TimeEntries, in.Employee.ShiftType)
	lateDeduction := LateDeduction(lateMinutes, cfg.LateDeductionRate)

	cashAdvance := in.CashAdvance.Round(2)
	deductions := cashAdvance.Add(lateDeduction)

	return Computation{
		DayOffHours:      in.DayOffHours,
		RegularHours:     minutesToHours(regularMin),
		OvertimeHours:    minutesToHours(overtimeMin),
		LateMinutes:      lateMinutes,
		HourlyRate:       in.Employee.HourlyRate(cfg.DefaultHoursPerShift).Round(2),
		RegularPay:       regularPay,
		OvertimePay:      overtimePay,
		GrossPay:         gross,
		TotalCommissions: commissions,
		CashAdvance:      cashAdvance,
		LateDeduction:    lateDeduction,
		TotalDeductions:  deductions,
		NetPay:           gross.Add(commissions).Sub(deductions),
	}
}

// TotalCommissions prices the built-in and custom commission counts.
// Counts for custom ids that are no longer configured are ignored.
func TotalCommissions(counts CommissionCounts, cfg settings.Settings) decimal.Decimal {
	total := decimal.NewFromInt(int64(counts.RushTarp)).Mul(cfg.RushTarpCommissionRate).
		Add(decimal.NewFromInt(int64(counts.Regular)).Mul(cfg.RegularCommissionRate))
	for id, n := range counts.Custom {
		rate, ok := cfg.CustomRate(id)
		if !ok {
			continue
		}
		total = total.Add(decimal.NewFromInt(int64(n)).Mul(rate))
	}
	return total.Round(2)
}

// payForMinutes prices minutes at ratePerShift per hoursPerShift hours.
func payForMinutes(ratePerShift decimal.Decimal, minutes int, hoursPerShift float64) decimal.Decimal {
	if hoursPerShift <= 0 || minutes == 0 {
		return decimal.Zero
	}
	shiftMinutes := decimal.NewFromFloat(hoursPerShift).Mul(decimal.NewFromInt(60))
	return ratePerShift.Mul(decimal.NewFromInt(int64(minutes))).Div(shiftMinutes).Round(2)
}

func minutesToHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}
