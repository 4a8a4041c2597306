package cashadvance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tarpworks/payroll-backend/internal/pkg/validator"
)

type CreateCashAdvanceRequest struct {
	EmployeeID string          `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Notes      *string         `json:"notes,omitempty"`

	ParsedDate time.Time `json:"-"`
}

func (r *CreateCashAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	if !r.Amount.IsPositive() {
		errs.Add("amount", "must be greater than 0")
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

type AddPaymentRequest struct {
	ID     string          `json:"-"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date,omitempty"`
	Notes  string          `json:"notes,omitempty"`

	ParsedDate time.Time `json:"-"`
}

// Validate defaults an empty date to now.
func (r *AddPaymentRequest) Validate(now time.Time) error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "must be a valid UUID")
	}
	if !r.Amount.IsPositive() {
		errs.Add("amount", "must be greater than 0")
	}
	if r.Date == "" {
		r.ParsedDate = now
	} else if d, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "must be in YYYY-MM-DD format")
	} else {
		r.ParsedDate = d
	}

	return errs.Err()
}

type PaymentResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
	Notes  string          `json:"notes,omitempty"`
}

type CashAdvanceResponse struct {
	ID           string            `json:"id"`
	EmployeeID   string            `json:"employee_id"`
	EmployeeName *string           `json:"employee_name,omitempty"`
	Amount       decimal.Decimal   `json:"amount"`
	Date         string            `json:"date"`
	Notes        *string           `json:"notes,omitempty"`
	Balance      decimal.Decimal   `json:"balance"`
	Payments     []PaymentResponse `json:"payments"`
	CreatedAt    string            `json:"created_at"`
}

func ToResponse(r CashAdvanceRecord) CashAdvanceResponse {
	payments := make([]PaymentResponse, 0, len(r.Payments))
	for _, p := range r.Payments {
		payments = append(payments, PaymentResponse{
			Amount: p.Amount,
			Date:   p.Date.Format(time.RFC3339),
			Notes:  p.Notes,
		})
	}
	return CashAdvanceResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Amount:       r.Amount,
		Date:         r.Date.Format("2006-01-02"),
		Notes:        r.Notes,
		Balance:      r.Balance,
		Payments:     payments,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
}

type BalanceResponse struct {
	EmployeeID  string          `json:"employee_id"`
	Balance     decimal.Decimal `json:"balance"`
	OpenRecords int             `json:"open_records"`
}
