package employee

import "context"

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee applies a partial update. A changed rate or shift length
	// recomputes the employee's unprocessed payroll records.
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (UpdateEmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error

	// BarcodePNG renders the employee's time-clock card barcode.
	BarcodePNG(ctx context.Context, id string) ([]byte, error)
}

// PayrollRecalculator recomputes stored payroll records after an employee's pay terms change.
type PayrollRecalculator interface {
	RecalculateForEmployee(ctx context.Context, emp Employee) (RecalculationResult, error)
}

type RecalculationResult struct {
	Recalculated int `json:"recalculated"`
	Failed       int `json:"failed"`
}
