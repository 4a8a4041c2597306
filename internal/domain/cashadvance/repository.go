package cashadvance

import "context"

type CashAdvanceRepository interface {
	List(ctx context.Context, employeeID *string) ([]CashAdvanceRecord, error)
	GetByID(ctx context.Context, id string) (CashAdvanceRecord, error)
	Create(ctx context.Context, record CashAdvanceRecord) (CashAdvanceRecord, error)

	// UpdateLedger stores the balance and payments of a record.
	UpdateLedger(ctx context.Context, record CashAdvanceRecord) (CashAdvanceRecord, error)
	Delete(ctx context.Context, id string) error
}
