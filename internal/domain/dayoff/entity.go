package dayoff

import (
	"time"

	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
)

// DayOffRecord is one scheduled day off. AbsenceCount and the qualification
// are a snapshot taken when the date was assigned.
type DayOffRecord struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	Month        int
	Year         int
	PayPeriod    payroll.PayPeriod
	AbsenceCount int
	IsQualified  bool
	HoursPaid    float64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName *string
}

// Reschedule moves the record to date and re-derives its period fields and qualification.
func (r DayOffRecord) Reschedule(date time.Time, q Qualification) DayOffRecord {
	r.Date = dateOnly(date)
	r.Month = int(date.Month())
	r.Year = date.Year()
	r.PayPeriod = payroll.PeriodForDay(date.Day())
	r.AbsenceCount = q.AbsenceCount
	r.IsQualified = q.IsQualified
	r.HoursPaid = q.HoursPaid
	return r
}

// NewRecord builds an unsaved day off for employeeID on date.
func NewRecord(employeeID string, date time.Time, q Qualification) DayOffRecord {
	return DayOffRecord{EmployeeID: employeeID}.Reschedule(date, q)
}

type DayOffFilter struct {
	EmployeeID *string
	Month      *int
	Year       *int
	PayPeriod  *payroll.PayPeriod
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
