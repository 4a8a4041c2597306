package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tarpworks/payroll-backend/internal/domain/change"
	"github.com/tarpworks/payroll-backend/internal/handler/http/middleware"
	"github.com/tarpworks/payroll-backend/internal/handler/http/response"
)

type StreamHandler interface {
	Changes(w http.ResponseWriter, r *http.Request)
}

type streamHandlerImpl struct {
	subscriber   change.Subscriber
	pingInterval time.Duration
}

func NewStreamHandler(subscriber change.Subscriber, pingInterval time.Duration) StreamHandler {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &streamHandlerImpl{subscriber: subscriber, pingInterval: pingInterval}
}

// Changes streams row changes as server-sent events. ?tables=a,b narrows the
// stream; an empty list subscribes to every table.
func (h *streamHandlerImpl) Changes(w http.ResponseWriter, r *http.Request) {
	tables, unknown := parseTables(r.URL.Query().Get("tables"))
	if len(unknown) > 0 {
		response.BadRequest(w, "Unknown tables", map[string]string{"tables": strings.Join(unknown, ",")})
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, unsubscribe := h.subscriber.Subscribe(tables)
	defer unsubscribe()

	requestID := middleware.GetRequestID(r.Context())
	slog.Info("Change stream opened", "request_id", requestID, "tables", tables)
	defer slog.Info("Change stream closed", "request_id", requestID)

	connected, _ := json.Marshal(map[string]interface{}{"status": "connected", "tables": tables})
	fmt.Fprintf(w, "event: connected\ndata: %s\n\n", connected)
	flusher.Flush()

	keepalive := time.NewTicker(h.pingInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				slog.Error("Failed to encode change event", "table", event.Table, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name(), data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func parseTables(raw string) (tables, unknown []string) {
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if !change.IsKnownTable(name) {
			unknown = append(unknown, name)
			continue
		}
		tables = append(tables, name)
	}
	return tables, unknown
}
