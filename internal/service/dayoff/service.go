package dayoff

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tarpworks/payroll-backend/internal/domain/dayoff"
	"github.com/tarpworks/payroll-backend/internal/domain/employee"
	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
	"github.com/tarpworks/payroll-backend/internal/domain/settings"
	"github.com/tarpworks/payroll-backend/internal/pkg/database"
	"golang.org/x/sync/errgroup"
)

type DayOffServiceImpl struct {
	tx              database.Transactor
	dayOffRepo      dayoff.DayOffRepository
	employeeRepo    employee.EmployeeRepository
	payrollRepo     payroll.PayrollRepository
	settingsService settings.SettingsService
	recalculator    dayoff.PeriodRecalculator
	now             func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewDayOffService(
	tx database.Transactor,
	dayOffRepo dayoff.DayOffRepository,
	employeeRepo employee.EmployeeRepository,
	payrollRepo payroll.PayrollRepository,
	settingsService settings.SettingsService,
	recalculator dayoff.PeriodRecalculator,
	rng *rand.Rand,
) dayoff.DayOffService {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &DayOffServiceImpl{
		tx:              tx,
		dayOffRepo:      dayOffRepo,
		employeeRepo:    employeeRepo,
		payrollRepo:     payrollRepo,
		settingsService: settingsService,
		recalculator:    recalculator,
		now:             time.Now,
		rng:             rng,
	}
}

func toResponses(records []dayoff.DayOffRecord) []dayoff.DayOffResponse {
	responses := make([]dayoff.DayOffResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, dayoff.ToResponse(r))
	}
	return responses
}

// qualify snapshots the employee's absences in the pay period containing date.
func (s *DayOffServiceImpl) qualify(ctx context.Context, emp employee.Employee, date time.Time, cfg settings.Settings) (dayoff.Qualification, error) {
	period := payroll.PeriodForDay(date.Day())
	record, err := s.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, int(date.Month()), date.Year(), period)

	var found *payroll.PayrollRecord
	switch {
	case err == nil:
		found = &record
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
	default:
		return dayoff.Qualification{}, err
	}

	absences := payroll.CountRecordAbsences(found, emp.ShiftHours(cfg.DefaultHoursPerShift))
	return dayoff.Qualify(absences, cfg.MaxAbsencesForDayOff), nil
}

type periodKey struct {
	employeeID string
	month      int
	year       int
	period     payroll.PayPeriod
}

// refreshPayroll recomputes the unprocessed payroll records the given day offs fall in.
// Failures are logged; processing recomputes the record again.
func (s *DayOffServiceImpl) refreshPayroll(ctx context.Context, records ...dayoff.DayOffRecord) {
	if s.recalculator == nil {
		return
	}

	seen := make(map[periodKey]bool, len(records))
	for _, r := range records {
		key := periodKey{employeeID: r.EmployeeID, month: r.Month, year: r.Year, period: r.PayPeriod}
		if seen[key] {
			continue
		}
		seen[key] = true

		if err := s.recalculator.RecalculatePeriod(ctx, key.employeeID, key.month, key.year, key.period); err != nil {
			slog.Error("Failed to recalculate payroll after day off change", "employee_id", key.employeeID,
				"month", key.month, "year", key.year, "period", key.period, "error", err)
		}
	}
}

// ListDayOffs implements dayoff.DayOffService.
func (s *DayOffServiceImpl) ListDayOffs(ctx context.Context, filter dayoff.DayOffFilter) ([]dayoff.DayOffResponse, error) {
	records, err := s.dayOffRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

// CreateDayOff implements dayoff.DayOffService.
func (s *DayOffServiceImpl) CreateDayOff(ctx context.Context, req dayoff.CreateDayOffRequest) (dayoff.DayOffResponse, error) {
	if err := req.Validate(); err != nil {
		return dayoff.DayOffResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return dayoff.DayOffResponse{}, err
	}
	cfg, err := s.settingsService.Current(ctx)
	if err != nil {
		return dayoff.DayOffResponse{}, err
	}

	q, err := s.qualify(ctx, emp, req.ParsedDate, cfg)
	if err != nil {
		return dayoff.DayOffResponse{}, err
	}

	created, err := s.dayOffRepo.Create(ctx, dayoff.NewRecord(emp.ID, req.ParsedDate, q))
	if err != nil {
		return dayoff.DayOffResponse{}, err
	}

	s.refreshPayroll(ctx, created)
	return dayoff.ToResponse(created), nil
}

// DeleteDayOff implements dayoff.DayOffService.
func (s *DayOffServiceImpl) DeleteDayOff(ctx context.Context, id string) error {
	record, err := s.dayOffRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.dayOffRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.refreshPayroll(ctx, record)
	return nil
}

func (s *DayOffServiceImpl) distribute(ids []string, year int, month time.Month) ([]dayoff.Assignment, error) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return dayoff.Distribute(ids, year, month, s.rng)
}

// AutoDistribute implements dayoff.DayOffService.
// A month that already has day offs must be cleared with DeleteMonth first.
func (s *DayOffServiceImpl) AutoDistribute(ctx context.Context, req dayoff.AutoDistributeRequest) ([]dayoff.DayOffResponse, error) {
	if err := req.Validate(s.now()); err != nil {
		return nil, err
	}

	existing, err := s.dayOffRepo.List(ctx, dayoff.DayOffFilter{Month: &req.Month, Year: &req.Year})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, dayoff.ErrMonthAlreadyDistributed
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]employee.Employee, len(employees))
	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
		ids = append(ids, emp.ID)
	}

	assignments, err := s.distribute(ids, req.Year, time.Month(req.Month))
	if err != nil {
		return nil, err
	}

	cfg, err := s.settingsService.Current(ctx)
	if err != nil {
		return nil, err
	}

	created := make([]dayoff.DayOffRecord, 0, len(assignments))
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, a := range assignments {
			q, err := s.qualify(ctx, byID[a.EmployeeID], a.Date, cfg)
			if err != nil {
				return err
			}
			record, err := s.dayOffRepo.Create(ctx, dayoff.NewRecord(a.EmployeeID, a.Date, q))
			if err != nil {
				return err
			}
			created = append(created, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.refreshPayroll(ctx, created...)

	slog.Info("Day offs distributed", "month", req.Month, "year", req.Year, "count", len(created))
	return toResponses(created), nil
}

// DeleteMonth implements dayoff.DayOffService.
// Deletes run concurrently; records removed before a failure stay removed.
func (s *DayOffServiceImpl) DeleteMonth(ctx context.Context, req dayoff.MonthRequest) (int, error) {
	if err := req.Validate(s.now()); err != nil {
		return 0, err
	}

	records, err := s.dayOffRepo.List(ctx, dayoff.DayOffFilter{Month: &req.Month, Year: &req.Year})
	if err != nil {
		return 0, err
	}

	var deleted atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for _, r := range records {
		g.Go(func() error {
			if err := s.dayOffRepo.Delete(gctx, r.ID); err != nil {
				return err
			}
			deleted.Add(1)
			return nil
		})
	}
	err = g.Wait()

	s.refreshPayroll(ctx, records...)

	slog.Info("Day offs deleted", "month", req.Month, "year", req.Year, "count", deleted.Load())
	return int(deleted.Load()), err
}

// Swap implements dayoff.DayOffService.
// Each record takes the other's date and gets a fresh qualification snapshot.
func (s *DayOffServiceImpl) Swap(ctx context.Context, req dayoff.SwapDayOffRequest) ([]dayoff.DayOffResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	first, err := s.dayOffRepo.GetByID(ctx, req.FirstID)
	if err != nil {
		return nil, err
	}
	second, err := s.dayOffRepo.GetByID(ctx, req.SecondID)
	if err != nil {
		return nil, err
	}
	if first.EmployeeID == second.EmployeeID {
		// Same employee keeps the same set of dates.
		return toResponses([]dayoff.DayOffRecord{first, second}), nil
	}

	cfg, err := s.settingsService.Current(ctx)
	if err != nil {
		return nil, err
	}

	moves := []struct {
		record dayoff.DayOffRecord
		date   time.Time
	}{
		{first, second.Date},
		{second, first.Date},
	}

	updated := make([]dayoff.DayOffRecord, len(moves))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range moves {
		g.Go(func() error {
			emp, err := s.employeeRepo.GetByID(gctx, m.record.EmployeeID)
			if err != nil {
				return err
			}
			q, err := s.qualify(gctx, emp, m.date, cfg)
			if err != nil {
				return err
			}
			saved, err := s.dayOffRepo.Update(gctx, m.record.Reschedule(m.date, q))
			if err != nil {
				return err
			}
			updated[i] = saved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Both the vacated and the new periods change.
	s.refreshPayroll(ctx, first, second, updated[0], updated[1])

	return toResponses(updated), nil
}

// Qualification implements dayoff.DayOffService.
func (s *DayOffServiceImpl) Qualification(ctx context.Context, req dayoff.QualificationRequest) (dayoff.Qualification, error) {
	if err := req.Validate(); err != nil {
		return dayoff.Qualification{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return dayoff.Qualification{}, err
	}
	cfg, err := s.settingsService.Current(ctx)
	if err != nil {
		return dayoff.Qualification{}, err
	}

	days := payroll.PayPeriod(req.PayPeriod).Days(req.Year, time.Month(req.Month))
	date := time.Date(req.Year, time.Month(req.Month), days[0], 0, 0, 0, 0, time.UTC)
	return s.qualify(ctx, emp, date, cfg)
}
