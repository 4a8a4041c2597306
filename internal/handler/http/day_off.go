package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tarpworks/payroll-backend/internal/domain/dayoff"
	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
	"github.com/tarpworks/payroll-backend/internal/handler/http/response"
	"github.com/tarpworks/payroll-backend/internal/pkg/validator"
)

type DayOffHandler interface {
	ListDayOffs(w http.ResponseWriter, r *http.Request)
	CreateDayOff(w http.ResponseWriter, r *http.Request)
	DeleteDayOff(w http.ResponseWriter, r *http.Request)
	AutoDistribute(w http.ResponseWriter, r *http.Request)
	DeleteMonth(w http.ResponseWriter, r *http.Request)
	Swap(w http.ResponseWriter, r *http.Request)
	Qualification(w http.ResponseWriter, r *http.Request)
}

type dayOffHandlerImpl struct {
	dayOffService dayoff.DayOffService
}

func NewDayOffHandler(dayOffService dayoff.DayOffService) DayOffHandler {
	return &dayOffHandlerImpl{dayOffService: dayOffService}
}

func (h *dayOffHandlerImpl) ListDayOffs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	parsed, err := payroll.ListFilterRequest{
		EmployeeID: q.Get("employee_id"),
		Month:      q.Get("month"),
		Year:       q.Get("year"),
		PayPeriod:  q.Get("pay_period"),
	}.ToFilter()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dayOffService.ListDayOffs(r.Context(), dayoff.DayOffFilter{
		EmployeeID: parsed.EmployeeID,
		Month:      parsed.Month,
		Year:       parsed.Year,
		PayPeriod:  parsed.PayPeriod,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *dayOffHandlerImpl) CreateDayOff(w http.ResponseWriter, r *http.Request) {
	var req dayoff.CreateDayOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.dayOffService.CreateDayOff(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Day off created", result)
}

func (h *dayOffHandlerImpl) DeleteDayOff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Day off ID is required", nil)
		return
	}

	if err := h.dayOffService.DeleteDayOff(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day off deleted", nil)
}

func (h *dayOffHandlerImpl) AutoDistribute(w http.ResponseWriter, r *http.Request) {
	var req dayoff.AutoDistributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.dayOffService.AutoDistribute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Day offs distributed", result)
}

func (h *dayOffHandlerImpl) DeleteMonth(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.ValidationError(w, map[string]string{"month": "must be between 1 and 12"})
		return
	}
	req := dayoff.MonthRequest{Month: month}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			response.ValidationError(w, map[string]string{"year": "must be between 2000 and 2100"})
			return
		}
		req.Year = year
	}

	deleted, err := h.dayOffService.DeleteMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day offs deleted", map[string]int{"deleted": deleted})
}

func (h *dayOffHandlerImpl) Swap(w http.ResponseWriter, r *http.Request) {
	var req dayoff.SwapDayOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.dayOffService.Swap(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day offs swapped", result)
}

func (h *dayOffHandlerImpl) Qualification(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var errs validator.ValidationErrors

	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		errs.Add("month", "must be between 1 and 12")
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		errs.Add("year", "must be between 2000 and 2100")
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs.ToMap())
		return
	}

	result, err := h.dayOffService.Qualification(r.Context(), dayoff.QualificationRequest{
		EmployeeID: q.Get("employee_id"),
		Month:      month,
		Year:       year,
		PayPeriod:  q.Get("pay_period"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
