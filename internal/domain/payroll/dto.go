package payroll

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tarpworks/payroll-backend/internal/pkg/validator"
)

// PayrollInput is the operator-entered part of a payroll record.
type PayrollInput struct {
	EmployeeID             string          `json:"employee_id"`
	Month                  int             `json:"month"`
	Year                   int             `json:"year"`
	PayPeriod              string          `json:"pay_period"`
	TimeEntries            TimeEntries     `json:"time_entries"`
	RushTarpCount          int             `json:"rush_tarp_count"`
	RegularCommissionCount int             `json:"regular_commission_count"`
	CustomCommissionCounts CustomCounts    `json:"custom_commission_counts,omitempty"`
	CashAdvance            decimal.Decimal `json:"cash_advance"`
}

// Validate normalizes quick-entry times and completes the day set of the period.
func (r *PayrollInput) Validate() error {
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
	if !PayPeriod(r.PayPeriod).Valid() {
		errs.Add("pay_period", "must be '1-15' or '16-31'")
	}
	validateCounts(&errs, r.RushTarpCount, r.RegularCommissionCount, r.CustomCommissionCounts)
	if r.CashAdvance.IsNegative() {
		errs.Add("cash_advance", "must be non-negative")
	}

	if len(errs) > 0 {
		return errs
	}

	entries, entryErrs := normalizeEntries(r.TimeEntries, PayPeriod(r.PayPeriod), r.Year, time.Month(r.Month))
	errs = append(errs, entryErrs...)
	r.TimeEntries = entries

	return errs.Err()
}

func (r PayrollInput) Commissions() CommissionCounts {
	return CommissionCounts{
		RushTarp: r.RushTarpCount,
		Regular:  r.RegularCommissionCount,
		Custom:   r.CustomCommissionCounts,
	}
}

type CreatePayrollRecordRequest struct {
	PayrollInput
}

type PreviewPayrollRequest struct {
	PayrollInput
}

type UpdatePayrollRecordRequest struct {
	ID                     string           `json:"-"`
	TimeEntries            TimeEntries      `json:"time_entries,omitempty"`
	RushTarpCount          *int             `json:"rush_tarp_count,omitempty"`
	RegularCommissionCount *int             `json:"regular_commission_count,omitempty"`
	CustomCommissionCounts CustomCounts     `json:"custom_commission_counts,omitempty"`
	CashAdvance            *decimal.Decimal `json:"cash_advance,omitempty"`
}

func (r *UpdatePayrollRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "must be a valid UUID")
	}
	rush, regular := 0, 0
	if r.RushTarpCount != nil {
		rush = *r.RushTarpCount
	}
	if r.RegularCommissionCount != nil {
		regular = *r.RegularCommissionCount
	}
	validateCounts(&errs, rush, regular, r.CustomCommissionCounts)
	if r.CashAdvance != nil && r.CashAdvance.IsNegative() {
		errs.Add("cash_advance", "must be non-negative")
	}

	return errs.Err()
}

// Apply merges the update into record. Entries are normalized against the
// record's own period.
func (r UpdatePayrollRecordRequest) Apply(record PayrollRecord) (PayrollRecord, error) {
	if r.TimeEntries != nil {
		merged := make(TimeEntries, len(record.TimeEntries))
		for day, entry := range record.TimeEntries {
			merged[day] = entry
		}
		for day, entry := range r.TimeEntries {
			merged[day] = entry
		}
		entries, errs := normalizeEntries(merged, record.PayPeriod, record.Year, time.Month(record.Month))
		if err := errs.Err(); err != nil {
			return PayrollRecord{}, err
		}
		record.TimeEntries = entries
	}
	if r.RushTarpCount != nil {
		record.RushTarpCount = *r.RushTarpCount
	}
	if r.RegularCommissionCount != nil {
		record.RegularCommissionCount = *r.RegularCommissionCount
	}
	if r.CustomCommissionCounts != nil {
		record.CustomCommissionCounts = r.CustomCommissionCounts
	}
	if r.CashAdvance != nil {
		record.CashAdvance = *r.CashAdvance
	}
	return record, nil
}

func validateCounts(errs *validator.ValidationErrors, rush, regular int, custom CustomCounts) {
	if rush < 0 {
		errs.Add("rush_tarp_count", "must be non-negative")
	}
	if regular < 0 {
		errs.Add("regular_commission_count", "must be non-negative")
	}
	for id, n := range custom {
		if n < 0 {
			errs.Add("custom_commission_counts."+id, "must be non-negative")
		}
	}
}

// normalizeEntries formats every time, rejects times that do not parse and
// days outside the period, and adds blank entries for days not supplied.
func normalizeEntries(in TimeEntries, period PayPeriod, year int, month time.Month) (TimeEntries, validator.ValidationErrors) {
	var errs validator.ValidationErrors

	out := period.EmptyEntries(year, month)
	for day, entry := range in {
		if _, ok := out[day]; !ok {
			errs.Add(fmt.Sprintf("time_entries.%d", day), "day is outside the pay period")
			continue
		}
		entry = entry.Normalized()
		for field, value := range entry.Fields() {
			if value == "" {
				continue
			}
			if _, ok := ParseClock(value); !ok {
				errs.Add(fmt.Sprintf("time_entries.%d.%s", day, field), "must be a valid HH:MM time")
			}
		}
		out[day] = entry
	}
	return out, errs
}

type PayrollRecordResponse struct {
	ID                     string          `json:"id"`
	EmployeeID             string          `json:"employee_id"`
	EmployeeName           *string         `json:"employee_name,omitempty"`
	EmployeeCode           *string         `json:"employee_code,omitempty"`
	Month                  int             `json:"month"`
	Year                   int             `json:"year"`
	PayPeriod              string          `json:"pay_period"`
	TimeEntries            TimeEntries     `json:"time_entries"`
	RushTarpCount          int             `json:"rush_tarp_count"`
	RegularCommissionCount int             `json:"regular_commission_count"`
	CustomCommissionCounts CustomCounts    `json:"custom_commission_counts"`
	CashAdvance            decimal.Decimal `json:"cash_advance"`
	DayOffHours            float64         `json:"day_off_hours"`
	RegularHours           float64         `json:"regular_hours"`
	OvertimeHours          float64         `json:"overtime_hours"`
	LateMinutes            int             `json:"late_minutes"`
	RegularPay             decimal.Decimal `json:"regular_pay"`
	OvertimePay            decimal.Decimal `json:"overtime_pay"`
	GrossPay               decimal.Decimal `json:"gross_pay"`
	TotalCommissions       decimal.Decimal `json:"total_commissions"`
	LateDeduction          decimal.Decimal `json:"late_deduction"`
	TotalDeductions        decimal.Decimal `json:"total_deductions"`
	NetPay                 decimal.Decimal `json:"net_pay"`
	Processed              bool            `json:"processed"`
	ProcessedAt            *string         `json:"processed_at,omitempty"`
	CreatedAt              string          `json:"created_at"`
	UpdatedAt              string          `json:"updated_at"`
}

func ToResponse(r PayrollRecord) PayrollRecordResponse {
	resp := PayrollRecordResponse{
		ID:                     r.ID,
		EmployeeID:             r.EmployeeID,
		EmployeeName:           r.EmployeeName,
		EmployeeCode:           r.EmployeeCode,
		Month:                  r.Month,
		Year:                   r.Year,
		PayPeriod:              string(r.PayPeriod),
		TimeEntries:            r.TimeEntries,
		RushTarpCount:          r.RushTarpCount,
		RegularCommissionCount: r.RegularCommissionCount,
		CustomCommissionCounts: r.CustomCommissionCounts,
		CashAdvance:            r.CashAdvance,
		DayOffHours:            r.DayOffHours,
		RegularHours:           r.RegularHours,
		OvertimeHours:          r.OvertimeHours,
		LateMinutes:            r.LateMinutes,
		RegularPay:             r.RegularPay,
		OvertimePay:            r.OvertimePay,
		GrossPay:               r.GrossPay,
		TotalCommissions:       r.TotalCommissions,
		LateDeduction:          r.LateDeduction,
		TotalDeductions:        r.TotalDeductions,
		NetPay:                 r.NetPay,
		Processed:              r.Processed,
		CreatedAt:              r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ProcessedAt != nil {
		at := r.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &at
	}
	if resp.CustomCommissionCounts == nil {
		resp.CustomCommissionCounts = CustomCounts{}
	}
	return resp
}

// ListFilterRequest is parsed from query parameters.
type ListFilterRequest struct {
	EmployeeID string
	Month      string
	Year       string
	PayPeriod  string
}

func (r ListFilterRequest) ToFilter() (PayrollFilter, error) {
	var errs validator.ValidationErrors
	var filter PayrollFilter

	if r.EmployeeID != "" {
		if !validator.IsValidUUID(r.EmployeeID) {
			errs.Add("employee_id", "must be a valid UUID")
		}
		id := r.EmployeeID
		filter.EmployeeID = &id
	}
	if r.Month != "" {
		m, ok := atoiInRange(r.Month, 1, 12)
		if !ok {
			errs.Add("month", "must be between 1 and 12")
		}
		filter.Month = &m
	}
	if r.Year != "" {
		y, ok := atoiInRange(r.Year, 2000, 2100)
		if !ok {
			errs.Add("year", "must be between 2000 and 2100")
		}
		filter.Year = &y
	}
	if r.PayPeriod != "" {
		p := PayPeriod(r.PayPeriod)
		if !p.Valid() {
			errs.Add("pay_period", "must be '1-15' or '16-31'")
		}
		filter.PayPeriod = &p
	}

	return filter, errs.Err()
}

func atoiInRange(s string, lo, hi int) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, n >= lo && n <= hi
}

type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ExportFile is a rendered export ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
