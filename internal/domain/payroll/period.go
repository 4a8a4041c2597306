package payroll

import "time"

// PayPeriod is a half-month payroll window.
type PayPeriod string

const (
	PayPeriodFirstHalf  PayPeriod = "1-15"
	PayPeriodSecondHalf PayPeriod = "16-31"
)

func (p PayPeriod) Valid() bool {
	return p == PayPeriodFirstHalf || p == PayPeriodSecondHalf
}

// PeriodForDay maps a day of month to its pay period.
func PeriodForDay(day int) PayPeriod {
	if day <= 15 {
		return PayPeriodFirstHalf
	}
	return PayPeriodSecondHalf
}

// DaysInMonth returns the number of calendar days in month of year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Days lists the contiguous days of the period within month of year.
func (p PayPeriod) Days(year int, month time.Month) []int {
	first, last := 1, 15
	if p == PayPeriodSecondHalf {
		first, last = 16, DaysInMonth(year, month)
	}
	days := make([]int, 0, last-first+1)
	for d := first; d <= last; d++ {
		days = append(days, d)
	}
	return days
}
