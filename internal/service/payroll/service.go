package payroll

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tarpworks/payroll-backend/internal/domain/cashadvance"
	"github.com/tarpworks/payroll-backend/internal/domain/dayoff"
	"github.com/tarpworks/payroll-backend/internal/domain/employee"
	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
	"github.com/tarpworks/payroll-backend/internal/domain/settings"
	"github.com/tarpworks/payroll-backend/internal/pkg/database"
	"github.com/tarpworks/payroll-backend/internal/pkg/export"
	"github.com/tarpworks/payroll-backend/internal/pkg/printrelay"
	"golang.org/x/sync/errgroup"
)

// recalculateConcurrency bounds parallel record updates during a rate-change cascade.
const recalculateConcurrency = 4

type PayrollServiceImpl struct {
	tx                 database.Transactor
	payrollRepo        payroll.PayrollRepository
	employeeRepo       employee.EmployeeRepository
	dayOffRepo         dayoff.DayOffRepository
	settingsService    settings.SettingsService
	cashAdvanceService cashadvance.CashAdvanceService
	printer            printrelay.Client
	sheets             export.RowAppender
	companyName        string
	now                func() time.Time
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	dayOffRepo dayoff.DayOffRepository,
	settingsService settings.SettingsService,
	cashAdvanceService cashadvance.CashAdvanceService,
	printer printrelay.Client,
	sheets export.RowAppender,
	companyName string,
) payroll.PayrollService {
	if sheets == nil {
		sheets = export.NopAppender{}
	}
	return &PayrollServiceImpl{
		tx:                 tx,
		payrollRepo:        payrollRepo,
		employeeRepo:       employeeRepo,
		dayOffRepo:         dayOffRepo,
		settingsService:    settingsService,
		cashAdvanceService: cashAdvanceService,
		printer:            printer,
		sheets:             sheets,
		companyName:        companyName,
		now:                time.Now,
	}
}

// dayOffHours sums the paid day-off hours the employee has inside the period.
func (s *PayrollServiceImpl) dayOffHours(ctx context.Context, employeeID string, month, year int, period payroll.PayPeriod) (float64, error) {
	records, err := s.dayOffRepo.List(ctx, dayoff.DayOffFilter{
		EmployeeID: &employeeID,
		Month:      &month,
		Year:       &year,
		PayPeriod:  &period,
	})
	if err != nil {
		return 0, err
	}
	return dayoff.HoursPaid(records), nil
}

func (s *PayrollServiceImpl) compute(ctx context.Context, emp employee.Employee, record payroll.PayrollRecord, cfg settings.Settings) (payroll.Computation, error) {
	hours, err := s.dayOffHours(ctx, emp.ID, record.Month, record.Year, record.PayPeriod)
	if err != nil {
		return payroll.Computation{}, err
	}
	return payroll.ComputeEarnings(payroll.EarningsInput{
		TimeEntries: record.TimeEntries,
		Employee:    emp,
		Commissions: record.Commissions(),
		CashAdvance: record.CashAdvance,
		DayOffHours: hours,
	}, cfg), nil
}

func recordFromInput(in payroll.PayrollInput) payroll.PayrollRecord {
	custom := in.CustomCommissionCounts
	if custom == nil {
		custom = payroll.CustomCounts{}
	}
	return payroll.PayrollRecord{
		EmployeeID:             in.EmployeeID,
		Month:                  in.Month,
		Year:                   in.Year,
		PayPeriod:              payroll.PayPeriod(in.PayPeriod),
		TimeEntries:            in.TimeEntries,
		RushTarpCount:          in.RushTarpCount,
		RegularCommissionCount: in.RegularCommissionCount,
		CustomCommissionCounts: custom,
		CashAdvance:            in.CashAdvance,
	}
}

// Preview implements payroll.PayrollService.
func (s *PayrollServiceImpl) Preview(ctx context.Context, req payroll.PreviewPayrollRequest) (payroll.Computation, error) {
	if err := req.Validate(); err != nil {
		return payroll.Computation{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.Computation{}, err
	}
	cfg, err := s.settingsService.Current(ctx)
	if err != nil {
		return payroll.Computation{}, err
	}

	return s.compute(ctx, emp, recordFromInput(req.PayrollInput), cfg)
}

// ListPayrollRecords implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecordResponse, error) {
	records, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, payroll.ToResponse(r))
	}
	return responses, nil
}

// GetPayrollRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayrollRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.ToResponse(record), nil
}

// CreatePayrollRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreatePayrollRecord(ctx context.Context, req payroll.CreatePayrollRecordRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	_, err = s.payrollRepo.GetByEmployeePeriod(ctx, req.EmployeeID, req.Month, req.Year, payroll.PayPeriod(req.PayPeriod))
	if err == nil {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordAlreadyExists
	}
	if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return payroll.PayrollRecordResponse{}, err
	}

	cfg, err := s.settingsService.Current(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record := recordFromInput(req.PayrollInput)
	computation, err := s.compute(ctx, emp, record, cfg)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	record.ApplyComputation(computation)

	created, err := s.payrollRepo.Create(ctx, record)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	slog.Info("Payroll record created", "record_id", created.ID, "employee_id", created.EmployeeID,
		"period", created.PayPeriod, "month", created.Month, "year", created.Year)
	return payroll.ToResponse(created), nil
}

// UpdatePayrollRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdatePayrollRecord(ctx context.Context, req payroll.UpdatePayrollRecordRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if record.Processed {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordProcessed
	}

	record, err = req.Apply(record)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	updated, err := s.refresh(ctx, record)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.ToResponse(updated), nil
}

// refresh recomputes record against the current employee, settings and day offs and saves it.
func (s *PayrollServiceImpl) refresh(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	emp, err := s.employeeRepo.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	cfg, err := s.settingsService.Current(ctx)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	computation, err := s.compute(ctx, emp, record, cfg)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	record.ApplyComputation(computation)
	return s.payrollRepo.Update(ctx, record)
}

// DeletePayrollRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeletePayrollRecord(ctx context.Context, id string) error {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record.Processed {
		return payroll.ErrPayrollRecordProcessed
	}
	return s.payrollRepo.Delete(ctx, id)
}

// ProcessPayrollRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) ProcessPayrollRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	var processed payroll.PayrollRecord

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := s.payrollRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if record.Processed {
			return payroll.ErrPayrollRecordProcessed
		}

		// Day offs may have changed since the record was last saved.
		if _, err := s.refresh(ctx, record); err != nil {
			return err
		}

		processed, err = s.payrollRepo.MarkProcessed(ctx, id, s.now())
		if err != nil {
			return err
		}

		if !record.CashAdvance.IsPositive() {
			return nil
		}
		remaining, err := s.cashAdvanceService.DeductFromPayroll(ctx, record.EmployeeID, record.CashAdvance)
		if err != nil {
			return err
		}
		if remaining.IsPositive() {
			slog.Warn("Payroll cash advance exceeds open advances",
				"record_id", id, "employee_id", record.EmployeeID, "unapplied", remaining.StringFixed(2))
		}
		return nil
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	if err := s.sheets.AppendPayrollRow(ctx, toExportRow(processed)); err != nil {
		slog.Warn("Failed to sync processed payroll to sheet", "record_id", id, "error", err)
	}

	slog.Info("Payroll record processed", "record_id", id, "net_pay", processed.NetPay.StringFixed(2))
	return payroll.ToResponse(processed), nil
}

// RecalculatePeriod implements dayoff.PeriodRecalculator.
// A missing or processed record is left alone.
func (s *PayrollServiceImpl) RecalculatePeriod(ctx context.Context, employeeID string, month, year int, period payroll.PayPeriod) error {
	record, err := s.payrollRepo.GetByEmployeePeriod(ctx, employeeID, month, year, period)
	if errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if record.Processed {
		return nil
	}

	updated, err := s.refresh(ctx, record)
	if err != nil {
		return err
	}
	slog.Info("Payroll recalculated after day off change", "record_id", updated.ID, "employee_id", employeeID,
		"day_off_hours", updated.DayOffHours, "net_pay", money(updated.NetPay))
	return nil
}

// RecalculateForEmployee implements employee.PayrollRecalculator.
// Records are saved independently, so one failure does not undo the others.
func (s *PayrollServiceImpl) RecalculateForEmployee(ctx context.Context, emp employee.Employee) (employee.RecalculationResult, error) {
	unprocessed := false
	records, err := s.payrollRepo.List(ctx, payroll.PayrollFilter{EmployeeID: &emp.ID, Processed: &unprocessed})
	if err != nil {
		return employee.RecalculationResult{}, err
	}
	cfg, err := s.settingsService.Current(ctx)
	if err != nil {
		return employee.RecalculationResult{}, err
	}

	var recalculated, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recalculateConcurrency)

	for _, record := range records {
		g.Go(func() error {
			computation, err := s.compute(gctx, emp, record, cfg)
			if err == nil {
				record.ApplyComputation(computation)
				_, err = s.payrollRepo.Update(gctx, record)
			}
			if err != nil {
				failed.Add(1)
				slog.Error("Failed to recalculate payroll record", "record_id", record.ID, "employee_id", emp.ID, "error", err)
				return nil
			}
			recalculated.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	result := employee.RecalculationResult{
		Recalculated: int(recalculated.Load()),
		Failed:       int(failed.Load()),
	}
	slog.Info("Payroll recalculated after rate change", "employee_id", emp.ID,
		"recalculated", result.Recalculated, "failed", result.Failed)
	return result, nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
