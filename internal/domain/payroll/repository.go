package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, period PayPeriod) (PayrollRecord, error)
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)

	// Update rewrites the entries, counts and computed totals of an unprocessed record.
	Update(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	MarkProcessed(ctx context.Context, id string, at time.Time) (PayrollRecord, error)
	Delete(ctx context.Context, id string) error
}
