package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tarpworks/payroll-backend/internal/domain/auth"
	"github.com/tarpworks/payroll-backend/internal/domain/cashadvance"
	"github.com/tarpworks/payroll-backend/internal/domain/dayoff"
	"github.com/tarpworks/payroll-backend/internal/domain/dtr"
	"github.com/tarpworks/payroll-backend/internal/domain/employee"
	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
	"github.com/tarpworks/payroll-backend/internal/domain/settings"
	"github.com/tarpworks/payroll-backend/internal/pkg/printrelay"
	"github.com/tarpworks/payroll-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidAccessCode):
		Unauthorized(w, "Invalid access code")
	case errors.Is(err, auth.ErrTooManyAttempts):
		TooManyRequests(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrNoEmployees):
		BadRequest(w, "No employees to schedule", nil)

	// Settings domain errors
	case errors.Is(err, settings.ErrCustomCommissionNotFound):
		NotFound(w, "Custom commission not found")
	case errors.Is(err, settings.ErrCustomCommissionExists):
		Conflict(w, "Custom commission name already exists")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this employee and period")
	case errors.Is(err, payroll.ErrPayrollRecordProcessed):
		Conflict(w, "Payroll record is already processed")
	case errors.Is(err, payroll.ErrInvalidPeriod), errors.Is(err, payroll.ErrUnsupportedExportFormat):
		BadRequest(w, err.Error(), nil)

	// Cash advance domain errors
	case errors.Is(err, cashadvance.ErrCashAdvanceNotFound):
		NotFound(w, "Cash advance not found")
	case errors.Is(err, cashadvance.ErrPaymentExceedsBalance):
		BadRequest(w, "Payment exceeds remaining balance", nil)
	case errors.Is(err, cashadvance.ErrCashAdvanceSettled):
		Conflict(w, "Cash advance is already fully paid")

	// Day off domain errors
	case errors.Is(err, dayoff.ErrDayOffNotFound):
		NotFound(w, "Day off not found")
	case errors.Is(err, dayoff.ErrDayOffExists):
		Conflict(w, "Employee already has a day off on this date")
	case errors.Is(err, dayoff.ErrMonthAlreadyDistributed):
		Conflict(w, "Day offs already exist for this month")
	case errors.Is(err, dayoff.ErrSwapSameRecord):
		BadRequest(w, err.Error(), nil)

	// DTR domain errors
	case errors.Is(err, dtr.ErrDTRNotFound):
		NotFound(w, "Time record not found")
	case errors.Is(err, dtr.ErrUnknownBarcode):
		NotFound(w, "Barcode does not match any employee")
	case errors.Is(err, dtr.ErrInvalidDTRRange):
		BadRequest(w, err.Error(), nil)

	// Print relay
	case errors.Is(err, printrelay.ErrRelayUnavailable), errors.Is(err, printrelay.ErrPrintFailed):
		BadGateway(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
