package printrelay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	ErrPrintFailed      = errors.New("print relay rejected the job")
	ErrRelayUnavailable = errors.New("print relay unavailable")
)

type Config struct {
	BaseURL     string
	PrinterName string
	PrinterIP   string
	Timeout     time.Duration
}

// Client talks to the local print relay.
type Client interface {
	Print(ctx context.Context, req PrintRequest) error
	Health(ctx context.Context) (Health, error)
}

type PrintRequest struct {
	PrinterName string `json:"printerName,omitempty"`
	PrinterIP   string `json:"printerIP,omitempty"`
	HTML        string `json:"html"`
	OrderID     string `json:"orderId,omitempty"`
}

type Health struct {
	Status  string `json:"status"`
	Printer string `json:"printer"`
	IP      string `json:"ip"`
}

type relayError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient  *resty.Client
	printerName string
	printerIP   string
}

func NewClient(cfg Config) *APIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &APIClient{
		httpClient:  restyClient,
		printerName: cfg.PrinterName,
		printerIP:   cfg.PrinterIP,
	}
}

// Print sends rendered HTML to the relay. Empty printer fields fall back to the configured printer.
func (c *APIClient) Print(ctx context.Context, req PrintRequest) error {
	if req.PrinterName == "" {
		req.PrinterName = c.printerName
	}
	if req.PrinterIP == "" {
		req.PrinterIP = c.printerIP
	}

	apiErr := new(relayError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetError(apiErr).
		Post("/api/print")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRelayUnavailable, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("%w: status=%d, error=%s, details=%s", ErrPrintFailed, resp.StatusCode(), apiErr.Error, apiErr.Details)
	}
	return nil
}

func (c *APIClient) Health(ctx context.Context) (Health, error) {
	result := new(Health)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		Get("/api/health")
	if err != nil {
		return Health{}, fmt.Errorf("%w: %v", ErrRelayUnavailable, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return Health{}, fmt.Errorf("%w: status=%d", ErrRelayUnavailable, resp.StatusCode())
	}
	return *result, nil
}
