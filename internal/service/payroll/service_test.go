package payroll

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarpworks/payroll-backend/internal/domain/cashadvance"
	"github.com/tarpworks/payroll-backend/internal/domain/dayoff"
	"github.com/tarpworks/payroll-backend/internal/domain/employee"
	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
	"github.com/tarpworks/payroll-backend/internal/pkg/export"
	"github.com/tarpworks/payroll-backend/internal/pkg/printrelay"
	"github.com/tarpworks/payroll-backend/internal/repository/memory"
	cashadvancesvc "github.com/tarpworks/payroll-backend/internal/service/cashadvance"
	settingssvc "github.com/tarpworks/payroll-backend/internal/service/settings"
)

type fakePrinter struct {
	requests []printrelay.PrintRequest
	err      error
}

func (f *fakePrinter) Print(ctx context.Context, req printrelay.PrintRequest) error {
	f.requests = append(f.requests, req)
	return f.err
}

func (f *fakePrinter) Health(ctx context.Context) (printrelay.Health, error) {
	return printrelay.Health{Status: "ok"}, nil
}

type fakeSheet struct {
	rows []export.PayrollRow
}

func (f *fakeSheet) AppendPayrollRow(ctx context.Context, row export.PayrollRow) error {
	f.rows = append(f.rows, row)
	return nil
}

type fixture struct {
	store   *memory.Store
	svc     *PayrollServiceImpl
	printer *fakePrinter
	sheet   *fakeSheet
	emp     employee.Employee
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	employees := memory.EmployeeRepository{Store: store}
	settingsService := settingssvc.NewSettingsService(memory.SettingsRepository{Store: store})
	cashAdvanceService := cashadvancesvc.NewCashAdvanceService(memory.Transactor{}, memory.CashAdvanceRepository{Store: store}, employees)

	emp, err := employees.Create(context.Background(), employee.Employee{
		Code:          "EMP001",
		Name:          "Juan Dela Cruz",
		RatePerShift:  decimal.NewFromInt(900),
		HoursPerShift: 9,
		ShiftType:     employee.ShiftTypeFirst,
	})
	require.NoError(t, err)

	printer := &fakePrinter{}
	sheet := &fakeSheet{}
	svc := NewPayrollService(
		memory.Transactor{},
		memory.PayrollRepository{Store: store},
		employees,
		memory.DayOffRepository{Store: store},
		settingsService,
		cashAdvanceService,
		printer,
		sheet,
		"Tarp Works",
	).(*PayrollServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC) }

	return fixture{store: store, svc: svc, printer: printer, sheet: sheet, emp: emp}
}

func (f fixture) input() payroll.PayrollInput {
	return payroll.PayrollInput{
		EmployeeID: f.emp.ID,
		Month:      3,
		Year:       2025,
		PayPeriod:  "1-15",
		TimeEntries: payroll.TimeEntries{
			1: {FirstShiftIn: "700", FirstShiftOut: "1600"},
			2: {FirstShiftIn: "715", FirstShiftOut: "1600", OTIn: "1700", OTOut: "1900"},
		},
		RushTarpCount: 2,
		CashAdvance:   decimal.NewFromInt(200),
	}
}

func TestPayrollService_CreatePayrollRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.CreatePayrollRecord(ctx, payroll.CreatePayrollRecordRequest{PayrollInput: f.input()})
	require.NoError(t, err)

	assert.Len(t, resp.TimeEntries, 15)
	assert.Equal(t, "07:00", resp.TimeEntries[1].FirstShiftIn)
	// day 2: 07:15-16:00 regular, 17:00-19:00 overtime
	assert.InDelta(t, 17.75, resp.RegularHours, 0.001)
	assert.InDelta(t, 2.0, resp.OvertimeHours, 0.001)
	assert.Equal(t, 15, resp.LateMinutes)
	assert.Equal(t, "1775.00", resp.RegularPay.StringFixed(2))
	assert.Equal(t, "200.00", resp.OvertimePay.StringFixed(2))
	assert.Equal(t, "100.00", resp.TotalCommissions.StringFixed(2))
	assert.Equal(t, "215.00", resp.TotalDeductions.StringFixed(2))
	assert.Equal(t, "1860.00", resp.NetPay.StringFixed(2))
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "Juan Dela Cruz", *resp.EmployeeName)

	_, err = f.svc.CreatePayrollRecord(ctx, payroll.CreatePayrollRecordRequest{PayrollInput: f.input()})
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)
}

func TestPayrollService_CreatePayrollRecord_IncludesDayOffHours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := memory.DayOffRepository{Store: f.store}.Create(ctx,
		dayoff.NewRecord(f.emp.ID, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), dayoff.Qualify(0, 3)))
	require.NoError(t, err)

	in := f.input()
	in.TimeEntries = payroll.TimeEntries{1: {FirstShiftIn: "07:00", FirstShiftOut: "16:00"}}
	in.RushTarpCount = 0
	in.CashAdvance = decimal.Zero

	resp, err := f.svc.CreatePayrollRecord(ctx, payroll.CreatePayrollRecordRequest{PayrollInput: in})
	require.NoError(t, err)

	assert.Equal(t, 9.0, resp.DayOffHours)
	assert.Equal(t, "1800.00", resp.RegularPay.StringFixed(2))
	assert.Equal(t, "1800.00", resp.NetPay.StringFixed(2))
}

func TestPayrollService_Preview_DoesNotSave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Preview(ctx, payroll.PreviewPayrollRequest{PayrollInput: f.input()})
	require.NoError(t, err)
	assert.Equal(t, "1860.00", c.NetPay.StringFixed(2))

	list, err := f.svc.ListPayrollRecords(ctx, payroll.PayrollFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPayrollService_UpdatePayrollRecord_Recomputes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreatePayrollRecord(ctx, payroll.CreatePayrollRecordRequest{PayrollInput: f.input()})
	require.NoError(t, err)

	zero := decimal.Zero
	updated, err := f.svc.UpdatePayrollRecord(ctx, payroll.UpdatePayrollRecordRequest{
		ID:          created.ID,
		TimeEntries: payroll.TimeEntries{3: {FirstShiftIn: "0700", FirstShiftOut: "1600"}},
		CashAdvance: &zero,
	})
	require.NoError(t, err)

	assert.Equal(t, "07:00", updated.TimeEntries[1].FirstShiftIn)
	assert.Equal(t, "07:00", updated.TimeEntries[3].FirstShiftIn)
	assert.InDelta(t, 26.75, updated.RegularHours, 0.001)
	assert.Equal(t, "2960.00", updated.NetPay.StringFixed(2))

	_, err = f.svc.UpdatePayrollRecord(ctx, payroll.UpdatePayrollRecordRequest{
		ID:          created.ID,
		TimeEntries: payroll.TimeEntries{20: {FirstShiftIn: "07:00"}},
	})
	assert.Error(t, err)
}

func TestPayrollService_ProcessPayrollRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	advances := memory.CashAdvanceRepository{Store: f.store}

	older, err := advances.Create(ctx, cashadvance.NewAdvance(f.emp.ID, decimal.NewFromInt(150),
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), nil))
	require.NoError(t, err)
	newer, err := advances.Create(ctx, cashadvance.NewAdvance(f.emp.ID, decimal.NewFromInt(100),
		time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), nil))
	require.NoError(t, err)

	created, err := f.svc.CreatePayrollRecord(ctx, payroll.CreatePayrollRecordRequest{PayrollInput: f.input()})
	require.NoError(t, err)

	processed, err := f.svc.ProcessPayrollRecord(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, processed.Processed)
	require.NotNil(t, processed.ProcessedAt)

	got, err := advances.GetByID(ctx, older.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero())
	require.Len(t, got.Payments, 1)
	assert.Equal(t, cashadvance.PayrollDeductionNote, got.Payments[0].Notes)

	got, err = advances.GetByID(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, "50.00", got.Balance.StringFixed(2))

	require.Len(t, f.sheet.rows, 1)
	assert.Equal(t, "EMP001", f.sheet.rows[0].EmployeeCode)

	_, err = f.svc.ProcessPayrollRecord(ctx, created.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordProcessed)

	_, err = f.svc.UpdatePayrollRecord(ctx, payroll.UpdatePayrollRecordRequest{ID: created.ID})
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordProcessed)

	assert.ErrorIs(t, f.svc.DeletePayrollRecord(ctx, created.ID), payroll.ErrPayrollRecordProcessed)
}

func TestPayrollService_RecalculateForEmployee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreatePayrollRecord(ctx, payroll.CreatePayrollRecordRequest{PayrollInput: f.input()})
	require.NoError(t, err)

	second := f.input()
	second.PayPeriod = "16-31"
	second.TimeEntries = payroll.TimeEntries{16: {FirstShiftIn: "07:00", FirstShiftOut: "16:00"}}
	failing, err := f.svc.CreatePayrollRecord(ctx, payroll.CreatePayrollRecordRequest{PayrollInput: second})
	require.NoError(t, err)

	third := f.input()
	third.Month = 2
	done, err := f.svc.CreatePayrollRecord(ctx, payroll.CreatePayrollRecordRequest{PayrollInput: third})
	require.NoError(t, err)
	_, err = f.svc.ProcessPayrollRecord(ctx, done.ID)
	require.NoError(t, err)

	f.store.FailUpdates[failing.ID] = errors.New("connection reset")

	emp := f.emp
	emp.RatePerShift = decimal.NewFromInt(1800)
	result, err := f.svc.RecalculateForEmployee(ctx, emp)
	require.NoError(t, err)
	assert.Equal(t, employee.RecalculationResult{Recalculated: 1, Failed: 1}, result)

	got, err := f.svc.GetPayrollRecord(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "3550.00", got.RegularPay.StringFixed(2))

	got, err = f.svc.GetPayrollRecord(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, "1775.00", got.RegularPay.StringFixed(2))
}

func TestPayrollService_Documents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreatePayrollRecord(ctx, payroll.CreatePayrollRecordRequest{PayrollInput: f.input()})
	require.NoError(t, err)

	pdf, err := f.svc.PayslipPDF(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.True(t, bytes.HasPrefix(pdf.Content, []byte("%PDF")))

	require.NoError(t, f.svc.PrintPayslip(ctx, created.ID))
	require.Len(t, f.printer.requests, 1)
	assert.Contains(t, f.printer.requests[0].HTML, "Juan Dela Cruz")
	assert.Equal(t, created.ID, f.printer.requests[0].OrderID)

	month, year := 3, 2025
	csv, err := f.svc.Export(ctx, payroll.PayrollFilter{Month: &month, Year: &year}, payroll.ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "payroll-2025-03.csv", csv.Filename)
	assert.Contains(t, string(csv.Content), "EMP001")

	xlsx, err := f.svc.Export(ctx, payroll.PayrollFilter{}, payroll.ExportFormatXLSX)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(xlsx.Content, []byte("PK")))

	_, err = f.svc.Export(ctx, payroll.PayrollFilter{}, payroll.ExportFormat("ods"))
	assert.ErrorIs(t, err, payroll.ErrUnsupportedExportFormat)
}

func TestPayrollService_PrintPayslip_RelayFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.printer.err = printrelay.ErrPrintFailed

	created, err := f.svc.CreatePayrollRecord(ctx, payroll.CreatePayrollRecordRequest{PayrollInput: f.input()})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.PrintPayslip(ctx, created.ID), printrelay.ErrPrintFailed)
}

func TestPayrollService_RecalculatePeriod_PicksUpDayOff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreatePayrollRecord(ctx, payroll.CreatePayrollRecordRequest{PayrollInput: f.input()})
	require.NoError(t, err)
	assert.Equal(t, 0.0, created.DayOffHours)

	_, err = memory.DayOffRepository{Store: f.store}.Create(ctx,
		dayoff.NewRecord(f.emp.ID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), dayoff.Qualify(0, 20)))
	require.NoError(t, err)

	require.NoError(t, f.svc.RecalculatePeriod(ctx, f.emp.ID, 3, 2025, payroll.PayPeriodFirstHalf))

	got, err := f.svc.GetPayrollRecord(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 9.0, got.DayOffHours)
	assert.InDelta(t, 26.75, got.RegularHours, 0.001)
	assert.Equal(t, "2760.00", got.NetPay.StringFixed(2))

	// no record for the second half
	assert.NoError(t, f.svc.RecalculatePeriod(ctx, f.emp.ID, 3, 2025, payroll.PayPeriodSecondHalf))
}

func TestPayrollService_RecalculatePeriod_SkipsProcessed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreatePayrollRecord(ctx, payroll.CreatePayrollRecordRequest{PayrollInput: f.input()})
	require.NoError(t, err)
	_, err = f.svc.ProcessPayrollRecord(ctx, created.ID)
	require.NoError(t, err)

	_, err = memory.DayOffRepository{Store: f.store}.Create(ctx,
		dayoff.NewRecord(f.emp.ID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), dayoff.Qualify(0, 20)))
	require.NoError(t, err)

	require.NoError(t, f.svc.RecalculatePeriod(ctx, f.emp.ID, 3, 2025, payroll.PayPeriodFirstHalf))

	got, err := f.svc.GetPayrollRecord(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.DayOffHours)
	assert.Equal(t, "1860.00", got.NetPay.StringFixed(2))
}

func TestPayrollService_ProcessPayrollRecord_RecomputesDayOffs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreatePayrollRecord(ctx, payroll.CreatePayrollRecordRequest{PayrollInput: f.input()})
	require.NoError(t, err)

	// saved straight to the store, so nothing refreshed the record
	_, err = memory.DayOffRepository{Store: f.store}.Create(ctx,
		dayoff.NewRecord(f.emp.ID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), dayoff.Qualify(0, 20)))
	require.NoError(t, err)

	processed, err := f.svc.ProcessPayrollRecord(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, processed.Processed)
	assert.Equal(t, 9.0, processed.DayOffHours)
	assert.Equal(t, "2760.00", processed.NetPay.StringFixed(2))

	require.Len(t, f.sheet.rows, 1)
	assert.Equal(t, "2760.00", f.sheet.rows[0].NetPay)
}
