package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	Code          string
	Name          string
	ContactNumber *string
	Email         *string
	Address       *string
	RatePerShift  decimal.Decimal
	HoursPerShift float64
	ShiftType     ShiftType
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ShiftType string

const (
	ShiftTypeFirst  ShiftType = "first"
	ShiftTypeSecond ShiftType = "second"
	ShiftTypeOpen   ShiftType = "open"
)

func (s ShiftType) Valid() bool {
	switch s {
	case ShiftTypeFirst, ShiftTypeSecond, ShiftTypeOpen:
		return true
	}
	return false
}

// ShiftHours returns the employee's configured shift length, or fallback when unset.
func (e Employee) ShiftHours(fallback float64) float64 {
	if e.HoursPerShift > 0 {
		return e.HoursPerShift
	}
	return fallback
}

// HourlyRate is RatePerShift divided by the shift length.
func (e Employee) HourlyRate(fallbackHours float64) decimal.Decimal {
	hours := e.ShiftHours(fallbackHours)
	if hours <= 0 {
		return decimal.Zero
	}
	return e.RatePerShift.Div(decimal.NewFromFloat(hours))
}
