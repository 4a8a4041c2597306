package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tarpworks/payroll-backend/internal/domain/cashadvance"
	"github.com/tarpworks/payroll-backend/internal/handler/http/response"
	"github.com/tarpworks/payroll-backend/internal/pkg/validator"
)

type CashAdvanceHandler interface {
	ListCashAdvances(w http.ResponseWriter, r *http.Request)
	CreateCashAdvance(w http.ResponseWriter, r *http.Request)
	DeleteCashAdvance(w http.ResponseWriter, r *http.Request)
	AddPayment(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
}

type cashAdvanceHandlerImpl struct {
	cashAdvanceService cashadvance.CashAdvanceService
}

func NewCashAdvanceHandler(cashAdvanceService cashadvance.CashAdvanceService) CashAdvanceHandler {
	return &cashAdvanceHandlerImpl{cashAdvanceService: cashAdvanceService}
}

func (h *cashAdvanceHandlerImpl) ListCashAdvances(w http.ResponseWriter, r *http.Request) {
	var employeeID *string
	if id := r.URL.Query().Get("employee_id"); id != "" {
		if !validator.IsValidUUID(id) {
			response.ValidationError(w, map[string]string{"employee_id": "must be a valid UUID"})
			return
		}
		employeeID = &id
	}

	result, err := h.cashAdvanceService.ListCashAdvances(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *cashAdvanceHandlerImpl) CreateCashAdvance(w http.ResponseWriter, r *http.Request) {
	var req cashadvance.CreateCashAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.cashAdvanceService.CreateCashAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Cash advance created", result)
}

func (h *cashAdvanceHandlerImpl) DeleteCashAdvance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Cash advance ID is required", nil)
		return
	}

	if err := h.cashAdvanceService.DeleteCashAdvance(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Cash advance deleted", nil)
}

func (h *cashAdvanceHandlerImpl) AddPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Cash advance ID is required", nil)
		return
	}

	var req cashadvance.AddPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.cashAdvanceService.AddPayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment recorded", result)
}

func (h *cashAdvanceHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if !validator.IsValidUUID(employeeID) {
		response.ValidationError(w, map[string]string{"employee_id": "must be a valid UUID"})
		return
	}

	result, err := h.cashAdvanceService.Balance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
