package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarpworks/payroll-backend/internal/domain/auth"
	"github.com/tarpworks/payroll-backend/internal/domain/cashadvance"
	"github.com/tarpworks/payroll-backend/internal/domain/dayoff"
	"github.com/tarpworks/payroll-backend/internal/domain/dtr"
	"github.com/tarpworks/payroll-backend/internal/domain/employee"
	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
	"github.com/tarpworks/payroll-backend/internal/pkg/printrelay"
	"github.com/tarpworks/payroll-backend/internal/pkg/validator"
)

func TestHandleError_StatusMapping(t *testing.T) {
	var validationErrs validator.ValidationErrors
	validationErrs.Add("month", "must be between 1 and 12")

	tests := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"validation", validationErrs, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"invalid access code", auth.ErrInvalidAccessCode, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"lockout", auth.ErrTooManyAttempts, http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"employee not found", employee.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("load: %w", payroll.ErrPayrollRecordNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"duplicate period", payroll.ErrPayrollRecordAlreadyExists, http.StatusConflict, "CONFLICT"},
		{"processed", payroll.ErrPayrollRecordProcessed, http.StatusConflict, "CONFLICT"},
		{"overpayment", cashadvance.ErrPaymentExceedsBalance, http.StatusBadRequest, "BAD_REQUEST"},
		{"month distributed", dayoff.ErrMonthAlreadyDistributed, http.StatusConflict, "CONFLICT"},
		{"unknown barcode", dtr.ErrUnknownBarcode, http.StatusNotFound, "NOT_FOUND"},
		{"relay rejected", fmt.Errorf("%w: status=500", printrelay.ErrPrintFailed), http.StatusBadGateway, "BAD_GATEWAY"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	var errs validator.ValidationErrors
	errs.Add("pay_period", "must be '1-15' or '16-31'")

	rec := httptest.NewRecorder()
	HandleError(rec, errs)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"pay_period": "must be '1-15' or '16-31'"}, body.Error.Details)
}

func TestFile(t *testing.T) {
	rec := httptest.NewRecorder()
	File(rec, "payroll-2025-03.csv", "text/csv", []byte("a,b\n"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="payroll-2025-03.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
	assert.Equal(t, "a,b\n", rec.Body.String())
}
