package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarpworks/payroll-backend/internal/domain/change"
	"github.com/tarpworks/payroll-backend/internal/pkg/export"
	"github.com/tarpworks/payroll-backend/internal/pkg/jwt"
	"github.com/tarpworks/payroll-backend/internal/pkg/notifier"
	"github.com/tarpworks/payroll-backend/internal/pkg/printrelay"
	"github.com/tarpworks/payroll-backend/internal/pkg/realtime"
	"github.com/tarpworks/payroll-backend/internal/repository/memory"
	authService "github.com/tarpworks/payroll-backend/internal/service/auth"
	cashAdvanceService "github.com/tarpworks/payroll-backend/internal/service/cashadvance"
	dayOffService "github.com/tarpworks/payroll-backend/internal/service/dayoff"
	dtrService "github.com/tarpworks/payroll-backend/internal/service/dtr"
	employeeService "github.com/tarpworks/payroll-backend/internal/service/employee"
	payrollService "github.com/tarpworks/payroll-backend/internal/service/payroll"
	settingsService "github.com/tarpworks/payroll-backend/internal/service/settings"
)

const (
	handlerTestSecret     = "test-secret-key-for-jwt"
	handlerTestAccessCode = "tarp-1234"
)

type stubPrinter struct {
	printed []printrelay.PrintRequest
	err     error
}

func (p *stubPrinter) Print(_ context.Context, req printrelay.PrintRequest) error {
	if p.err != nil {
		return p.err
	}
	p.printed = append(p.printed, req)
	return nil
}

func (p *stubPrinter) Health(context.Context) (printrelay.Health, error) {
	if p.err != nil {
		return printrelay.Health{}, p.err
	}
	return printrelay.Health{Status: "ok", Printer: "POS-58", IP: "192.168.1.50"}, nil
}

type testServer struct {
	router  http.Handler
	hub     *realtime.Hub
	printer *stubPrinter
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	tx := memory.Transactor{}
	employees := memory.EmployeeRepository{Store: store}

	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h")
	authSvc, err := authService.NewAuthService(jwtSvc, "", handlerTestAccessCode)
	require.NoError(t, err)

	settingsSvc := settingsService.NewSettingsService(memory.SettingsRepository{Store: store})
	cashAdvanceSvc := cashAdvanceService.NewCashAdvanceService(tx, memory.CashAdvanceRepository{Store: store}, employees)
	printer := &stubPrinter{}
	payrollSvc := payrollService.NewPayrollService(
		tx,
		memory.PayrollRepository{Store: store},
		employees,
		memory.DayOffRepository{Store: store},
		settingsSvc,
		cashAdvanceSvc,
		printer,
		export.NopAppender{},
		"Tarp Works",
	)
	employeeSvc := employeeService.NewEmployeeService(employees, settingsSvc, payrollSvc)
	dayOffSvc := dayOffService.NewDayOffService(tx, memory.DayOffRepository{Store: store}, employees, memory.PayrollRepository{Store: store}, settingsSvc, payrollSvc, nil)
	dtrSvc := dtrService.NewDTRService(memory.DTRRepository{Store: store}, employees, notifier.Nop{}, time.UTC)
	hub := realtime.NewHub()

	router := NewRouter(jwtSvc, Handlers{
		Auth:        NewAuthHandler(authSvc),
		Employee:    NewEmployeeHandler(employeeSvc),
		Settings:    NewSettingsHandler(settingsSvc),
		Payroll:     NewPayrollHandler(payrollSvc),
		CashAdvance: NewCashAdvanceHandler(cashAdvanceSvc),
		DayOff:      NewDayOffHandler(dayOffSvc),
		DTR:         NewDTRHandler(dtrSvc),
		Printer:     NewPrinterHandler(printer),
		Stream:      NewStreamHandler(hub, time.Hour),
	}, RouterOptions{AllowedOrigins: []string{"http://localhost:5173"}, Env: "test"})

	ts := &testServer{router: router, hub: hub, printer: printer}
	ts.token = ts.login(t)
	return ts
}

func (ts *testServer) login(t *testing.T) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"code": handlerTestAccessCode}, false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.AccessToken)
	return body.Data.AccessToken
}

func (ts *testServer) do(t *testing.T, method, path string, payload interface{}, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Error   map[string]interface{} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func (ts *testServer) createEmployee(t *testing.T) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/v1/employees", map[string]interface{}{
		"code":            "EMP001",
		"name":            "Juan Dela Cruz",
		"rate_per_shift":  "900",
		"hours_per_shift": 9,
		"shift_type":      "first",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var emp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &emp))
	return emp.ID
}

func payrollInput(employeeID string) map[string]interface{} {
	return map[string]interface{}{
		"employee_id": employeeID,
		"month":       3,
		"year":        2025,
		"pay_period":  "1-15",
		"time_entries": map[string]interface{}{
			"1": map[string]string{"first_shift_in": "700", "first_shift_out": "1600"},
			"2": map[string]string{"first_shift_in": "715", "first_shift_out": "1600", "ot_in": "1700", "ot_out": "1900"},
		},
		"rush_tarp_count": 2,
		"cash_advance":    "200",
	}
}

// ===== AUTH =====

func TestAuthHandler_Login_InvalidCode(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"code": "wrong"}, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "UNAUTHORIZED", env.Error["code"])
}

func TestAuthHandler_Login_InvalidBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/employees", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	req.Header.Set("Authorization", "Bearer "+ts.token)
	req.Header.Set("X-Request-ID", "scan-42")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "scan-42", rec.Header().Get("X-Request-ID"))
}

// ===== EMPLOYEES =====

func TestEmployeeHandler_CRUD(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createEmployee(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/employees/"+id, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var emp map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &emp))
	assert.Equal(t, "EMP001", emp["code"])
	assert.Equal(t, "100", emp["hourly_rate"])

	// duplicate code
	rec = ts.do(t, http.MethodPost, "/api/v1/employees", map[string]interface{}{
		"code": "EMP001", "name": "Maria Clara", "rate_per_shift": "800", "shift_type": "first",
	}, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/v1/employees/"+id, map[string]interface{}{"name": "Juan D. Cruz"}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodDelete, "/api/v1/employees/"+id, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/employees/"+id, nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmployeeHandler_CreateAcceptsCamelCase(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/employees", map[string]interface{}{
		"code":          "EMP002",
		"name":          "Maria Santos",
		"ratePerShift":  "720",
		"hoursPerShift": 8,
		"shiftType":     "second",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var emp map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &emp))
	assert.Equal(t, "720", emp["rate_per_shift"])
	assert.Equal(t, "90", emp["hourly_rate"])
	assert.Equal(t, "second", emp["shift_type"])
}

func TestEmployeeHandler_CreateValidation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/employees", map[string]interface{}{"rate_per_shift": "-1"}, true)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec)
	details, ok := env.Error["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "name")
}

func TestEmployeeHandler_Barcode(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createEmployee(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/employees/"+id+"/barcode.png", nil, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}

// ===== PAYROLL =====

func TestPayrollHandler_Lifecycle(t *testing.T) {
	ts := newTestServer(t)
	empID := ts.createEmployee(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/payroll/preview", payrollInput(empID), true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/v1/payroll", payrollInput(empID), true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &record))
	id := record["id"].(string)
	assert.InDelta(t, 17.75, record["regular_hours"], 0.001)
	assert.Equal(t, "1860", record["net_pay"])

	rec = ts.do(t, http.MethodPost, "/api/v1/payroll", payrollInput(empID), true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/payroll?month=3&year=2025&pay_period=1-15", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &list))
	assert.Len(t, list, 1)

	rec = ts.do(t, http.MethodPost, "/api/v1/payroll/"+id+"/process", nil, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPut, "/api/v1/payroll/"+id, map[string]interface{}{"rush_tarp_count": 5}, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/v1/payroll/"+id, nil, true)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPayrollHandler_ListInvalidFilter(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/payroll?month=13", nil, true)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPayrollHandler_Documents(t *testing.T) {
	ts := newTestServer(t)
	empID := ts.createEmployee(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/payroll", payrollInput(empID), true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &record))
	id := record["id"].(string)

	rec = ts.do(t, http.MethodGet, "/api/v1/payroll/"+id+"/payslip.pdf", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payslip-EMP001-2025-03-1-15.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = ts.do(t, http.MethodGet, "/api/v1/payroll/export?month=3&year=2025&format=csv", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Juan Dela Cruz")

	rec = ts.do(t, http.MethodGet, "/api/v1/payroll/export?month=3&year=2025&format=ods", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/payroll/"+id+"/print", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, ts.printer.printed, 1)
	assert.Contains(t, ts.printer.printed[0].HTML, "Juan Dela Cruz")

	ts.printer.err = printrelay.ErrPrintFailed
	rec = ts.do(t, http.MethodPost, "/api/v1/payroll/"+id+"/print", nil, true)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

// ===== CASH ADVANCES =====

func TestCashAdvanceHandler_Payments(t *testing.T) {
	ts := newTestServer(t)
	empID := ts.createEmployee(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/cash-advances", map[string]interface{}{
		"employee_id": empID, "amount": "500", "date": "2025-03-01",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var advance map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &advance))
	id := advance["id"].(string)

	rec = ts.do(t, http.MethodPost, "/api/v1/cash-advances/"+id+"/payments", map[string]interface{}{"amount": "600"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/cash-advances/"+id+"/payments", map[string]interface{}{"amount": "200"}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/v1/cash-advances/balance/"+empID, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var balance map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &balance))
	assert.Equal(t, "300", balance["balance"])
	assert.EqualValues(t, 1, balance["open_records"])
}

// ===== DAY OFFS =====

func TestDayOffHandler_DistributeAndDeleteMonth(t *testing.T) {
	ts := newTestServer(t)
	ts.createEmployee(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/day-offs/auto-distribute", map[string]int{"month": 2, "year": 2026}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/v1/day-offs/auto-distribute", map[string]int{"month": 2, "year": 2026}, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/day-offs?month=2&year=2026", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &list))
	assert.Len(t, list, 1)

	rec = ts.do(t, http.MethodDelete, "/api/v1/day-offs?month=2&year=2026", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted map[string]int
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &deleted))
	assert.Equal(t, 1, deleted["deleted"])
}

func TestDayOffHandler_ChangesReachSavedPayroll(t *testing.T) {
	ts := newTestServer(t)
	empID := ts.createEmployee(t)

	rec := ts.do(t, http.MethodPut, "/api/v1/settings", map[string]int{"max_absences_for_day_off": 20}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/v1/payroll", payrollInput(empID), true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &record))
	payrollPath := "/api/v1/payroll/" + record["id"].(string)

	rec = ts.do(t, http.MethodPost, "/api/v1/day-offs", map[string]string{"employee_id": empID, "date": "2025-03-10"}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var dayOff map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &dayOff))
	assert.Equal(t, true, dayOff["is_qualified"])

	rec = ts.do(t, http.MethodGet, payrollPath, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &record))
	assert.Equal(t, 9.0, record["day_off_hours"])
	assert.Equal(t, "2760", record["net_pay"])

	rec = ts.do(t, http.MethodDelete, "/api/v1/day-offs/"+dayOff["id"].(string), nil, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, payrollPath, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &record))
	assert.Equal(t, 0.0, record["day_off_hours"])
	assert.Equal(t, "1860", record["net_pay"])
}

func TestDayOffHandler_SwapSameRecord(t *testing.T) {
	ts := newTestServer(t)
	id := "0190a5b2-7c3d-7e4f-8a9b-0c1d2e3f4a5b"

	rec := ts.do(t, http.MethodPost, "/api/v1/day-offs/swap", map[string]string{"first_id": id, "second_id": id}, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ===== DTR =====

func TestDTRHandler_CheckIn(t *testing.T) {
	ts := newTestServer(t)
	ts.createEmployee(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/dtr/check-in", map[string]string{"barcode": "emp001", "time": "07:02", "date": "2025-03-03"}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
	assert.Equal(t, true, result["applied"])
	assert.Equal(t, "am_in", result["column"])

	rec = ts.do(t, http.MethodPost, "/api/v1/dtr/check-in", map[string]string{"barcode": "NOPE"}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/dtr?from=2025-03-05&to=2025-03-01", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ===== PRINTER =====

func TestPrinterHandler_Health(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/printer/health", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "POS-58")

	ts.printer.err = printrelay.ErrRelayUnavailable
	rec = ts.do(t, http.MethodGet, "/api/v1/printer/health", nil, true)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

// ===== STREAM =====

func TestStreamHandler_UnknownTable(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/changes/stream?tables=users", nil, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStreamHandler_DeliversEvents(t *testing.T) {
	ts := newTestServer(t)
	srv := httptest.NewServer(ts.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/changes/stream?tables=payroll_records&jwt="+ts.token, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: connected\n", line)

	require.Eventually(t, func() bool { return ts.hub.TotalSubscribers() == 1 }, time.Second, 10*time.Millisecond)

	// filtered out
	ts.hub.Publish(change.Event{EventType: change.EventInsert, Table: "employees", New: json.RawMessage(`{"id":"e1"}`)})
	ts.hub.Publish(change.Event{EventType: change.EventUpdate, Table: "payroll_records", New: json.RawMessage(`{"netPay":"1860"}`)})

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "event: ") && line != "event: connected\n" {
			break
		}
	}
	assert.Equal(t, "event: payroll_records.update\n", line)

	data, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, data, `"netPay":"1860"`)
	assert.Contains(t, data, `"eventType":"update"`)
}
