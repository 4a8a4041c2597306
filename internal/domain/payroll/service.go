package payroll

import (
	"context"

	"github.com/tarpworks/payroll-backend/internal/domain/employee"
)

type PayrollService interface {
	// Preview computes totals without saving anything.
	Preview(ctx context.Context, req PreviewPayrollRequest) (Computation, error)

	ListPayrollRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecordResponse, error)
	GetPayrollRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	CreatePayrollRecord(ctx context.Context, req CreatePayrollRecordRequest) (PayrollRecordResponse, error)
	UpdatePayrollRecord(ctx context.Context, req UpdatePayrollRecordRequest) (PayrollRecordResponse, error)
	DeletePayrollRecord(ctx context.Context, id string) error

	// ProcessPayrollRecord freezes the record and deducts its cash advance
	// from the employee's open advances.
	ProcessPayrollRecord(ctx context.Context, id string) (PayrollRecordResponse, error)

	PayslipPDF(ctx context.Context, id string) (ExportFile, error)
	PrintPayslip(ctx context.Context, id string) error
	Export(ctx context.Context, filter PayrollFilter, format ExportFormat) (ExportFile, error)

	// RecalculatePeriod recomputes the employee's unprocessed record for one
	// pay period, picking up day-off changes.
	RecalculatePeriod(ctx context.Context, employeeID string, month, year int, period PayPeriod) error

	employee.PayrollRecalculator
}
