package http

import (
	"log/slog"
	"net/http"

	"github.com/tarpworks/payroll-backend/internal/handler/http/response"
	"github.com/tarpworks/payroll-backend/internal/pkg/printrelay"
)

type PrinterHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type printerHandlerImpl struct {
	client printrelay.Client
}

func NewPrinterHandler(client printrelay.Client) PrinterHandler {
	return &printerHandlerImpl{client: client}
}

// Health proxies the print relay's health check.
func (h *printerHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.Health(r.Context())
	if err != nil {
		slog.Warn("Print relay health check failed", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
