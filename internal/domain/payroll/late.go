package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/tarpworks/payroll-backend/internal/domain/employee"
)

// Expected shift start times.
const (
	FirstShiftStart  = "07:00"
	SecondShiftStart = "20:30"
)

// LateMinutes returns how late the employee's designated shift started that day.
// Open-shift employees are never late.
func LateMinutes(entry DayEntry, shift employee.ShiftType) int {
	var in, expected string
	switch shift {
	case employee.ShiftTypeFirst:
		in, expected = entry.FirstShiftIn, FirstShiftStart
	case employee.ShiftTypeSecond:
		in, expected = entry.SecondShiftIn, SecondShiftStart
	default:
		return 0
	}

	actual, ok := ParseClock(in)
	if !ok {
		return 0
	}
	start, _ := ParseClock(expected)
	if actual <= start {
		return 0
	}
	return actual - start
}

// PeriodLateMinutes accumulates LateMinutes over every day.
func PeriodLateMinutes(entries TimeEntries, shift employee.ShiftType) int {
	total := 0
	for _, entry := range entries {
		total += LateMinutes(entry, shift)
	}
	return total
}

// LateDeduction converts late minutes to currency at ratePerMinute.
func LateDeduction(minutes int, ratePerMinute decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Mul(ratePerMinute).Round(2)
}
