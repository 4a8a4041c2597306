package http

import (
	"encoding/json"
	"net/http"

	"github.com/tarpworks/payroll-backend/internal/domain/dtr"
	"github.com/tarpworks/payroll-backend/internal/handler/http/response"
)

type DTRHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	ListDTR(w http.ResponseWriter, r *http.Request)
}

type dtrHandlerImpl struct {
	dtrService dtr.DTRService
}

func NewDTRHandler(dtrService dtr.DTRService) DTRHandler {
	return &dtrHandlerImpl{dtrService: dtrService}
}

// CheckIn records a barcode scan. A scan that cannot be applied still
// returns 200 with a warning.
func (h *dtrHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req dtr.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.dtrService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !result.Applied {
		response.SuccessWithMessage(w, result.Warning, result)
		return
	}
	response.SuccessWithMessage(w, "Time recorded", result)
}

func (h *dtrHandlerImpl) ListDTR(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := dtr.ListFilterRequest{
		EmployeeID: q.Get("employee_id"),
		From:       q.Get("from"),
		To:         q.Get("to"),
	}.ToFilter()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dtrService.ListDTR(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
