package cashadvance

import (
	"context"

	"github.com/shopspring/decimal"
)

type CashAdvanceService interface {
	ListCashAdvances(ctx context.Context, employeeID *string) ([]CashAdvanceResponse, error)
	CreateCashAdvance(ctx context.Context, req CreateCashAdvanceRequest) (CashAdvanceResponse, error)
	DeleteCashAdvance(ctx context.Context, id string) error

	// AddPayment rejects amounts above the remaining balance.
	AddPayment(ctx context.Context, req AddPaymentRequest) (CashAdvanceResponse, error)
	Balance(ctx context.Context, employeeID string) (BalanceResponse, error)

	// DeductFromPayroll applies a processed payroll's cash advance to the
	// employee's open advances and returns the unapplied remainder.
	DeductFromPayroll(ctx context.Context, employeeID string, amount decimal.Decimal) (decimal.Decimal, error)
}
