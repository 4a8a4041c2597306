package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tarpworks/payroll-backend/internal/domain/employee"
	"github.com/tarpworks/payroll-backend/internal/domain/settings"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestComputeEarnings_EndToEnd(t *testing.T) {
	emp := employee.Employee{RatePerShift: dec("900"), HoursPerShift: 9, ShiftType: employee.ShiftTypeFirst}
	cfg := settings.Defaults()
	cfg.RushTarpCommissionRate = dec("50")
	cfg.LateDeductionRate = dec("1")

	got := ComputeEarnings(EarningsInput{
		TimeEntries: TimeEntries{1: {FirstShiftIn: "07:15", FirstShiftOut: "17:00"}},
		Employee:    emp,
		Commissions: CommissionCounts{RushTarp: 2},
		CashAdvance: dec("100"),
	}, cfg)

	assert.Equal(t, 9.0, got.RegularHours)
	assert.Equal(t, 0.75, got.OvertimeHours)
	assert.Equal(t, 15, got.LateMinutes)
	assertMoney(t, "100", got.HourlyRate)
	assertMoney(t, "900", got.RegularPay)
	assertMoney(t, "75", got.OvertimePay)
	assertMoney(t, "975", got.GrossPay)
	assertMoney(t, "100", got.TotalCommissions)
	assertMoney(t, "15", got.LateDeduction)
	assertMoney(t, "115", got.TotalDeductions)
	assertMoney(t, "960", got.NetPay)
}

func TestComputeEarnings_DayOffHoursAreRegular(t *testing.T) {
	emp := employee.Employee{RatePerShift: dec("900"), HoursPerShift: 9, ShiftType: employee.ShiftTypeOpen}

	got := ComputeEarnings(EarningsInput{Employee: emp, DayOffHours: 9}, settings.Defaults())

	assert.Equal(t, 9.0, got.RegularHours)
	assertMoney(t, "900", got.GrossPay)
	assertMoney(t, "900", got.NetPay)
}

func TestComputeEarnings_FallsBackToDefaultShiftLength(t *testing.T) {
	emp := employee.Employee{RatePerShift: dec("800"), ShiftType: employee.ShiftTypeOpen}
	cfg := settings.Defaults()
	cfg.DefaultHoursPerShift = 8

	got := ComputeEarnings(EarningsInput{
		TimeEntries: TimeEntries{3: {FirstShiftIn: "08:00", FirstShiftOut: "18:00"}},
		Employee:    emp,
	}, cfg)

	assert.Equal(t, 8.0, got.RegularHours)
	assert.Equal(t, 2.0, got.OvertimeHours)
	assertMoney(t, "1000", got.GrossPay)
}

func TestComputeEarnings_RateChangeKeepsHours(t *testing.T) {
	entries := TimeEntries{
		1: {FirstShiftIn: "07:00", FirstShiftOut: "17:00"},
		2: {FirstShiftIn: "07:00", FirstShiftOut: "16:00"},
	}
	cfg := settings.Defaults()
	before := ComputeEarnings(EarningsInput{TimeEntries: entries, Employee: employee.Employee{RatePerShift: dec("900"), HoursPerShift: 9}}, cfg)
	after := ComputeEarnings(EarningsInput{TimeEntries: entries, Employee: employee.Employee{RatePerShift: dec("1080"), HoursPerShift: 9}}, cfg)

	assert.Equal(t, before.RegularHours, after.RegularHours)
	assert.Equal(t, before.OvertimeHours, after.OvertimeHours)
	assertMoney(t, "2160", after.RegularPay)
	assertMoney(t, "120", after.OvertimePay)
}

func TestTotalCommissions_Custom(t *testing.T) {
	cfg := settings.Defaults()
	cfg.CustomCommissions = settings.CustomCommissions{{ID: "banner", Name: "Banner", Rate: dec("12.5")}}

	total := TotalCommissions(CommissionCounts{
		Regular: 2,
		Custom:  CustomCounts{"banner": 4, "retired": 10},
	}, cfg)

	assertMoney(t, "100", total)
}

func TestComputeEarnings_Deterministic(t *testing.T) {
	in := EarningsInput{
		TimeEntries: TimeEntries{
			16: {FirstShiftIn: "07:20", FirstShiftOut: "16:00", OTIn: "17:00", OTOut: "19:10"},
			17: {FirstShiftIn: "07:00", FirstShiftOut: "15:00"},
		},
		Employee:    employee.Employee{RatePerShift: dec("733.33"), HoursPerShift: 9, ShiftType: employee.ShiftTypeFirst},
		Commissions: CommissionCounts{RushTarp: 1, Regular: 3},
		CashAdvance: dec("50.5"),
	}
	first := ComputeEarnings(in, settings.Defaults())
	second := ComputeEarnings(in, settings.Defaults())
	assert.Equal(t, first, second)
}

func TestComputeEarnings_HoursMatchPeriodHours(t *testing.T) {
	emp := employee.Employee{RatePerShift: dec("800"), HoursPerShift: 8, ShiftType: employee.ShiftTypeSecond}
	entries := TimeEntries{
		1: {SecondShiftIn: "20:30", SecondShiftOut: "05:00"},
		2: {FirstShiftIn: "07:00", FirstShiftOut: "12:00", SecondShiftIn: "20:30", SecondShiftOut: "02:00"},
		3: {OTIn: "17:00", OTOut: "19:30"},
		4: {},
	}

	want := PeriodHours(entries, 8)
	got := ComputeEarnings(EarningsInput{TimeEntries: entries, Employee: emp}, settings.Defaults())
	assert.InDelta(t, want.RegularHours, got.RegularHours, 0.01)
	assert.InDelta(t, want.OvertimeHours, got.OvertimeHours, 0.01)

	withDayOff := ComputeEarnings(EarningsInput{TimeEntries: entries, Employee: emp, DayOffHours: 9}, settings.Defaults())
	assert.InDelta(t, want.RegularHours+9, withDayOff.RegularHours, 0.01)
	assert.InDelta(t, want.OvertimeHours, withDayOff.OvertimeHours, 0.01)
}
