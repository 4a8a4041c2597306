package dayoff

import (
	"time"

	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
	"github.com/tarpworks/payroll-backend/internal/pkg/validator"
)

type CreateDayOffRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`

	ParsedDate time.Time `json:"-"`
}

func (r *CreateDayOffRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	if validator.IsEmpty(r.Date) {
		errs.Add("date", "is required")
	} else if d, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "must be in YYYY-MM-DD format")
	} else {
		r.ParsedDate = d
	}

	return errs.Err()
}

// MonthRequest selects a calendar month. Year 0 means the current year.
type MonthRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *MonthRequest) Validate(now time.Time) error {
	var errs validator.ValidationErrors

	if r.Year == 0 {
		r.Year = now.Year()
	}
	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", "must be between 1 and 12")
	}
	if !validator.IsValidYear(r.Year) {
		errs.Add("year", "must be between 2000 and 2100")
	}

	return errs.Err()
}

type AutoDistributeRequest struct {
	MonthRequest
}

type SwapDayOffRequest struct {
	FirstID  string `json:"first_id"`
	SecondID string `json:"second_id"`
}

func (r *SwapDayOffRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.FirstID) {
		errs.Add("first_id", "must be a valid UUID")
	}
	if !validator.IsValidUUID(r.SecondID) {
		errs.Add("second_id", "must be a valid UUID")
	}
	if len(errs) == 0 && r.FirstID == r.SecondID {
		return ErrSwapSameRecord
	}

	return errs.Err()
}

type QualificationRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	PayPeriod  string `json:"pay_period"`
}

func (r *QualificationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", "must be between 1 and 12")
	}
	if !validator.IsValidYear(r.Year) {
		errs.Add("year", "must be between 2000 and 2100")
	}
	if !payroll.PayPeriod(r.PayPeriod).Valid() {
		errs.Add("pay_period", "must be '1-15' or '16-31'")
	}

	return errs.Err()
}

type DayOffResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	PayPeriod    string  `json:"pay_period"`
	AbsenceCount int     `json:"absence_count"`
	IsQualified  bool    `json:"is_qualified"`
	HoursPaid    float64 `json:"hours_paid"`
	CreatedAt    string  `json:"created_at"`
}

func ToResponse(r DayOffRecord) DayOffResponse {
	return DayOffResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Date:         r.Date.Format("2006-01-02"),
		Month:        r.Month,
		Year:         r.Year,
		PayPeriod:    string(r.PayPeriod),
		AbsenceCount: r.AbsenceCount,
		IsQualified:  r.IsQualified,
		HoursPaid:    r.HoursPaid,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
}
