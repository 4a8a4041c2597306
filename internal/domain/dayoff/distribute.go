package dayoff

import (
	"math/rand/v2"
	"time"

	"github.com/tarpworks/payroll-backend/internal/domain/employee"
	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
)

// Assignment places one employee's day off in the month.
type Assignment struct {
	EmployeeID string
	Date       time.Time
	PayPeriod  payroll.PayPeriod
}

// DayForIndex spreads n slots evenly over a month of monthDays days and
// returns the day for the 0-based slot i, i.e. ceil(monthDays*(i+1)/n)
// clamped to [1, monthDays]. Days are distinct whenever n <= monthDays.
func DayForIndex(i, n, monthDays int) int {
	day := (monthDays*(i+1) + n - 1) / n
	return max(1, min(day, monthDays))
}

// Distribute shuffles employeeIDs with rng and gives each one evenly spaced
// day of the month. With more employees than days, some days repeat.
func Distribute(employeeIDs []string, year int, month time.Month, rng *rand.Rand) ([]Assignment, error) {
	n := len(employeeIDs)
	if n == 0 {
		return nil, employee.ErrNoEmployees
	}

	shuffled := make([]string, n)
	copy(shuffled, employeeIDs)
	rng.Shuffle(n, func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	monthDays := payroll.DaysInMonth(year, month)
	assignments := make([]Assignment, 0, n)
	for i, id := range shuffled {
		day := DayForIndex(i, n, monthDays)
		assignments = append(assignments, Assignment{
			EmployeeID: id,
			Date:       time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
			PayPeriod:  payroll.PeriodForDay(day),
		})
	}
	return assignments, nil
}
