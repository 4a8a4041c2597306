package employee

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tarpworks/payroll-backend/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	ContactNumber *string         `json:"contact_number,omitempty"`
	Email         *string         `json:"email,omitempty"`
	Address       *string         `json:"address,omitempty"`
	RatePerShift  decimal.Decimal `json:"rate_per_shift"`
	HoursPerShift float64         `json:"hours_per_shift"`
	ShiftType     string          `json:"shift_type"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))

	if r.Name == "" {
		errs.Add("name", "is required")
	}
	if r.Code != "" && !validator.IsValidEmployeeCode(r.Code) {
		errs.Add("code", "must be 3-32 characters of A-Z, 0-9 or '-'")
	}
	if r.ContactNumber != nil && *r.ContactNumber != "" && !validator.IsValidPhoneNumber(*r.ContactNumber) {
		errs.Add("contact_number", "must be a valid mobile number")
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if r.RatePerShift.IsNegative() {
		errs.Add("rate_per_shift", "must be non-negative")
	}
	if r.HoursPerShift < 0 || r.HoursPerShift > 24 {
		errs.Add("hours_per_shift", "must be between 0 and 24")
	}
	if r.ShiftType == "" {
		r.ShiftType = string(ShiftTypeFirst)
	}
	if !ShiftType(r.ShiftType).Valid() {
		errs.Add("shift_type", "must be 'first', 'second' or 'open'")
	}

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID            string           `json:"-"`
	Code          *string          `json:"code,omitempty"`
	Name          *string          `json:"name,omitempty"`
	ContactNumber *string          `json:"contact_number,omitempty"`
	Email         *string          `json:"email,omitempty"`
	Address       *string          `json:"address,omitempty"`
	RatePerShift  *decimal.Decimal `json:"rate_per_shift,omitempty"`
	HoursPerShift *float64         `json:"hours_per_shift,omitempty"`
	ShiftType     *string          `json:"shift_type,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
		if trimmed == "" {
			errs.Add("name", "cannot be empty")
		}
	}
	if r.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*r.Code))
		r.Code = &code
		if !validator.IsValidEmployeeCode(code) {
			errs.Add("code", "must be 3-32 characters of A-Z, 0-9 or '-'")
		}
	}
	if r.ContactNumber != nil && *r.ContactNumber != "" && !validator.IsValidPhoneNumber(*r.ContactNumber) {
		errs.Add("contact_number", "must be a valid mobile number")
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if r.RatePerShift != nil && r.RatePerShift.IsNegative() {
		errs.Add("rate_per_shift", "must be non-negative")
	}
	if r.HoursPerShift != nil && (*r.HoursPerShift < 0 || *r.HoursPerShift > 24) {
		errs.Add("hours_per_shift", "must be between 0 and 24")
	}
	if r.ShiftType != nil && !ShiftType(*r.ShiftType).Valid() {
		errs.Add("shift_type", "must be 'first', 'second' or 'open'")
	}

	return errs.Err()
}

// ChangesPayTerms reports whether the update touches rate or shift length.
func (r UpdateEmployeeRequest) ChangesPayTerms(current Employee) bool {
	if r.RatePerShift != nil && !r.RatePerShift.Equal(current.RatePerShift) {
		return true
	}
	if r.HoursPerShift != nil && *r.HoursPerShift != current.HoursPerShift {
		return true
	}
	return false
}

type EmployeeResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	ContactNumber *string         `json:"contact_number,omitempty"`
	Email         *string         `json:"email,omitempty"`
	Address       *string         `json:"address,omitempty"`
	RatePerShift  decimal.Decimal `json:"rate_per_shift"`
	HoursPerShift float64         `json:"hours_per_shift"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	ShiftType     string          `json:"shift_type"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

type UpdateEmployeeResponse struct {
	Employee      EmployeeResponse     `json:"employee"`
	Recalculation *RecalculationResult `json:"recalculation,omitempty"`
}
