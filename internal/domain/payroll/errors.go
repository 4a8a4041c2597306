package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrPayrollRecordProcessed     = errors.New("payroll record already processed, cannot modify")
	ErrInvalidPeriod              = errors.New("invalid payroll period")
	ErrUnsupportedExportFormat    = errors.New("unsupported export format")
)
