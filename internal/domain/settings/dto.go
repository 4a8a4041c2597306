package settings

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tarpworks/payroll-backend/internal/pkg/validator"
)

type SettingsResponse struct {
	DefaultHoursPerShift   float64            `json:"default_hours_per_shift"`
	RushTarpCommissionRate decimal.Decimal    `json:"rush_tarp_commission_rate"`
	RegularCommissionRate  decimal.Decimal    `json:"regular_commission_rate"`
	LateDeductionRate      decimal.Decimal    `json:"late_deduction_rate"`
	MaxAbsencesForDayOff   int                `json:"max_absences_for_day_off"`
	CustomCommissions      []CustomCommission `json:"custom_commissions"`
}

func ToResponse(s Settings) SettingsResponse {
	custom := []CustomCommission(s.CustomCommissions)
	if custom == nil {
		custom = []CustomCommission{}
	}
	return SettingsResponse{
		DefaultHoursPerShift:   s.DefaultHoursPerShift,
		RushTarpCommissionRate: s.RushTarpCommissionRate,
		RegularCommissionRate:  s.RegularCommissionRate,
		LateDeductionRate:      s.LateDeductionRate,
		MaxAbsencesForDayOff:   s.MaxAbsencesForDayOff,
		CustomCommissions:      custom,
	}
}

type UpdateSettingsRequest struct {
	DefaultHoursPerShift   *float64         `json:"default_hours_per_shift,omitempty"`
	RushTarpCommissionRate *decimal.Decimal `json:"rush_tarp_commission_rate,omitempty"`
	RegularCommissionRate  *decimal.Decimal `json:"regular_commission_rate,omitempty"`
	LateDeductionRate      *decimal.Decimal `json:"late_deduction_rate,omitempty"`
	MaxAbsencesForDayOff   *int             `json:"max_absences_for_day_off,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DefaultHoursPerShift != nil && (*r.DefaultHoursPerShift <= 0 || *r.DefaultHoursPerShift > 24) {
		errs.Add("default_hours_per_shift", "must be greater than 0 and at most 24")
	}
	if r.RushTarpCommissionRate != nil && r.RushTarpCommissionRate.IsNegative() {
		errs.Add("rush_tarp_commission_rate", "must be non-negative")
	}
	if r.RegularCommissionRate != nil && r.RegularCommissionRate.IsNegative() {
		errs.Add("regular_commission_rate", "must be non-negative")
	}
	if r.LateDeductionRate != nil && r.LateDeductionRate.IsNegative() {
		errs.Add("late_deduction_rate", "must be non-negative")
	}
	if r.MaxAbsencesForDayOff != nil && *r.MaxAbsencesForDayOff < 0 {
		errs.Add("max_absences_for_day_off", "must be non-negative")
	}

	return errs.Err()
}

// Apply copies the set fields onto current.
func (r UpdateSettingsRequest) Apply(current Settings) Settings {
	if r.DefaultHoursPerShift != nil {
		current.DefaultHoursPerShift = *r.DefaultHoursPerShift
	}
	if r.RushTarpCommissionRate != nil {
		current.RushTarpCommissionRate = *r.RushTarpCommissionRate
	}
	if r.RegularCommissionRate != nil {
		current.RegularCommissionRate = *r.RegularCommissionRate
	}
	if r.LateDeductionRate != nil {
		current.LateDeductionRate = *r.LateDeductionRate
	}
	if r.MaxAbsencesForDayOff != nil {
		current.MaxAbsencesForDayOff = *r.MaxAbsencesForDayOff
	}
	return current
}

type CreateCustomCommissionRequest struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

func (r *CreateCustomCommissionRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		errs.Add("name", "is required")
	}
	if r.Rate.IsNegative() {
		errs.Add("rate", "must be non-negative")
	}

	return errs.Err()
}
