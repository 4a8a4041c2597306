package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
	"github.com/tarpworks/payroll-backend/internal/handler/http/response"
)

type PayrollHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)

	// Payroll Records
	ListPayrollRecords(w http.ResponseWriter, r *http.Request)
	CreatePayrollRecord(w http.ResponseWriter, r *http.Request)
	GetPayrollRecord(w http.ResponseWriter, r *http.Request)
	UpdatePayrollRecord(w http.ResponseWriter, r *http.Request)
	DeletePayrollRecord(w http.ResponseWriter, r *http.Request)
	ProcessPayrollRecord(w http.ResponseWriter, r *http.Request)

	// Documents
	PayslipPDF(w http.ResponseWriter, r *http.Request)
	PrintPayslip(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req payroll.PreviewPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== PAYROLL RECORDS ==========

func (h *payrollHandlerImpl) ListPayrollRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := payrollFilterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ListPayrollRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) CreatePayrollRecord(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayrollRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreatePayrollRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll record created", result)
}

func (h *payrollHandlerImpl) GetPayrollRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll record ID is required", nil)
		return
	}

	result, err := h.payrollService.GetPayrollRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdatePayrollRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll record ID is required", nil)
		return
	}

	var req payroll.UpdatePayrollRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.payrollService.UpdatePayrollRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record updated", result)
}

func (h *payrollHandlerImpl) DeletePayrollRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll record ID is required", nil)
		return
	}

	if err := h.payrollService.DeletePayrollRecord(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record deleted", nil)
}

func (h *payrollHandlerImpl) ProcessPayrollRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll record ID is required", nil)
		return
	}

	result, err := h.payrollService.ProcessPayrollRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record processed", result)
}

// ========== DOCUMENTS ==========

func (h *payrollHandlerImpl) PayslipPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll record ID is required", nil)
		return
	}

	file, err := h.payrollService.PayslipPDF(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}

func (h *payrollHandlerImpl) PrintPayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll record ID is required", nil)
		return
	}

	if err := h.payrollService.PrintPayslip(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip sent to printer", nil)
}

func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := payrollFilterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	format := payroll.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = payroll.ExportFormatCSV
	}

	file, err := h.payrollService.Export(r.Context(), filter, format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}

func payrollFilterFromQuery(r *http.Request) (payroll.PayrollFilter, error) {
	q := r.URL.Query()
	filter, err := payroll.ListFilterRequest{
		EmployeeID: q.Get("employee_id"),
		Month:      q.Get("month"),
		Year:       q.Get("year"),
		PayPeriod:  q.Get("pay_period"),
	}.ToFilter()
	if err != nil {
		return payroll.PayrollFilter{}, err
	}

	if raw := q.Get("processed"); raw != "" {
		if processed, err := strconv.ParseBool(raw); err == nil {
			filter.Processed = &processed
		}
	}

	return filter, nil
}
