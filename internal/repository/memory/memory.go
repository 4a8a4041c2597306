// Package memory holds map-backed repositories used by service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tarpworks/payroll-backend/internal/domain/cashadvance"
	"github.com/tarpworks/payroll-backend/internal/domain/dayoff"
	"github.com/tarpworks/payroll-backend/internal/domain/dtr"
	"github.com/tarpworks/payroll-backend/internal/domain/employee"
	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
	"github.com/tarpworks/payroll-backend/internal/domain/settings"
)

// Transactor runs fn directly. Memory stores have no rollback.
type Transactor struct{}

func (Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Store shares employees between repositories so joined names resolve.
type Store struct {
	mu          sync.Mutex
	employees   map[string]employee.Employee
	payroll     map[string]payroll.PayrollRecord
	dayOffs     map[string]dayoff.DayOffRecord
	advances    map[string]cashadvance.CashAdvanceRecord
	dtrs        map[string]dtr.DTRRecord
	settings    *settings.Settings
	clock       time.Time
	FailUpdates map[string]error
}

func NewStore() *Store {
	return &Store{
		employees:   make(map[string]employee.Employee),
		payroll:     make(map[string]payroll.PayrollRecord),
		dayOffs:     make(map[string]dayoff.DayOffRecord),
		advances:    make(map[string]cashadvance.CashAdvanceRecord),
		dtrs:        make(map[string]dtr.DTRRecord),
		clock:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		FailUpdates: make(map[string]error),
	}
}

// tick returns strictly increasing timestamps so creation order is stable.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) employeeName(id string) (*string, *string) {
	emp, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	name, code := emp.Name, emp.Code
	return &name, &code
}

// Employees

type EmployeeRepository struct{ *Store }

func (r EmployeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r EmployeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if e.Code == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r EmployeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.employees {
		if existing.Code == e.Code {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = r.tick()
	e.UpdatedAt = e.CreatedAt
	r.employees[e.ID] = e
	return e, nil
}

func (r EmployeeRepository) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[req.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if req.Code != nil {
		e.Code = *req.Code
	}
	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.ContactNumber != nil {
		e.ContactNumber = req.ContactNumber
	}
	if req.Email != nil {
		e.Email = req.Email
	}
	if req.Address != nil {
		e.Address = req.Address
	}
	if req.RatePerShift != nil {
		e.RatePerShift = *req.RatePerShift
	}
	if req.HoursPerShift != nil {
		e.HoursPerShift = *req.HoursPerShift
	}
	if req.ShiftType != nil {
		e.ShiftType = employee.ShiftType(*req.ShiftType)
	}
	e.UpdatedAt = r.tick()
	r.employees[e.ID] = e
	return e, nil
}

func (r EmployeeRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return nil
}

// Settings

type SettingsRepository struct{ *Store }

func (r SettingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settings == nil {
		return settings.Settings{}, settings.ErrSettingsNotFound
	}
	return *r.settings, nil
}

func (r SettingsRepository) Upsert(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.UpdatedAt = r.tick()
	r.settings = &s
	return s, nil
}

// Payroll

type PayrollRepository struct{ *Store }

func (r PayrollRepository) withNames(p payroll.PayrollRecord) payroll.PayrollRecord {
	p.EmployeeName, p.EmployeeCode = r.employeeName(p.EmployeeID)
	return p
}

func (r PayrollRepository) List(ctx context.Context, f payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []payroll.PayrollRecord
	for _, p := range r.payroll {
		if f.EmployeeID != nil && p.EmployeeID != *f.EmployeeID ||
			f.Month != nil && p.Month != *f.Month ||
			f.Year != nil && p.Year != *f.Year ||
			f.PayPeriod != nil && p.PayPeriod != *f.PayPeriod ||
			f.Processed != nil && p.Processed != *f.Processed {
			continue
		}
		out = append(out, r.withNames(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r PayrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payroll[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r.withNames(p), nil
}

func (r PayrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, period payroll.PayPeriod) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payroll {
		if p.EmployeeID == employeeID && p.Month == month && p.Year == year && p.PayPeriod == period {
			return r.withNames(p), nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (r PayrollRepository) Create(ctx context.Context, p payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.payroll {
		if existing.EmployeeID == p.EmployeeID && existing.Month == p.Month &&
			existing.Year == p.Year && existing.PayPeriod == p.PayPeriod {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = r.tick()
	p.UpdatedAt = p.CreatedAt
	r.payroll[p.ID] = p
	return r.withNames(p), nil
}

func (r PayrollRepository) Update(ctx context.Context, p payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.FailUpdates[p.ID]; ok {
		return payroll.PayrollRecord{}, err
	}
	existing, ok := r.payroll[p.ID]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	if existing.Processed {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordProcessed
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = r.tick()
	r.payroll[p.ID] = p
	return r.withNames(p), nil
}

func (r PayrollRepository) MarkProcessed(ctx context.Context, id string, at time.Time) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payroll[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	if p.Processed {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordProcessed
	}
	p.Processed = true
	p.ProcessedAt = &at
	r.payroll[id] = p
	return r.withNames(p), nil
}

func (r PayrollRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payroll[id]; !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	delete(r.payroll, id)
	return nil
}

// Day offs

type DayOffRepository struct{ *Store }

func (r DayOffRepository) withName(d dayoff.DayOffRecord) dayoff.DayOffRecord {
	d.EmployeeName, _ = r.employeeName(d.EmployeeID)
	return d
}

func (r DayOffRepository) List(ctx context.Context, f dayoff.DayOffFilter) ([]dayoff.DayOffRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dayoff.DayOffRecord
	for _, d := range r.dayOffs {
		if f.EmployeeID != nil && d.EmployeeID != *f.EmployeeID ||
			f.Month != nil && d.Month != *f.Month ||
			f.Year != nil && d.Year != *f.Year ||
			f.PayPeriod != nil && d.PayPeriod != *f.PayPeriod {
			continue
		}
		out = append(out, r.withName(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r DayOffRepository) GetByID(ctx context.Context, id string) (dayoff.DayOffRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.dayOffs[id]
	if !ok {
		return dayoff.DayOffRecord{}, dayoff.ErrDayOffNotFound
	}
	return r.withName(d), nil
}

func (r DayOffRepository) conflicts(d dayoff.DayOffRecord) bool {
	for _, existing := range r.dayOffs {
		if existing.ID != d.ID && existing.EmployeeID == d.EmployeeID && existing.Date.Equal(d.Date) {
			return true
		}
	}
	return false
}

func (r DayOffRepository) Create(ctx context.Context, d dayoff.DayOffRecord) (dayoff.DayOffRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflicts(d) {
		return dayoff.DayOffRecord{}, dayoff.ErrDayOffExists
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt = r.tick()
	d.UpdatedAt = d.CreatedAt
	r.dayOffs[d.ID] = d
	return r.withName(d), nil
}

func (r DayOffRepository) Update(ctx context.Context, d dayoff.DayOffRecord) (dayoff.DayOffRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dayOffs[d.ID]; !ok {
		return dayoff.DayOffRecord{}, dayoff.ErrDayOffNotFound
	}
	if r.conflicts(d) {
		return dayoff.DayOffRecord{}, dayoff.ErrDayOffExists
	}
	d.UpdatedAt = r.tick()
	r.dayOffs[d.ID] = d
	return r.withName(d), nil
}

func (r DayOffRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dayOffs[id]; !ok {
		return dayoff.ErrDayOffNotFound
	}
	delete(r.dayOffs, id)
	return nil
}

// Cash advances

type CashAdvanceRepository struct{ *Store }

func (r CashAdvanceRepository) List(ctx context.Context, employeeID *string) ([]cashadvance.CashAdvanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []cashadvance.CashAdvanceRecord
	for _, c := range r.advances {
		if employeeID != nil && c.EmployeeID != *employeeID {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r CashAdvanceRepository) GetByID(ctx context.Context, id string) (cashadvance.CashAdvanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.advances[id]
	if !ok {
		return cashadvance.CashAdvanceRecord{}, cashadvance.ErrCashAdvanceNotFound
	}
	return c, nil
}

func (r CashAdvanceRepository) Create(ctx context.Context, c cashadvance.CashAdvanceRecord) (cashadvance.CashAdvanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = r.tick()
	c.UpdatedAt = c.CreatedAt
	r.advances[c.ID] = c
	return c, nil
}

func (r CashAdvanceRepository) UpdateLedger(ctx context.Context, c cashadvance.CashAdvanceRecord) (cashadvance.CashAdvanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.advances[c.ID]
	if !ok {
		return cashadvance.CashAdvanceRecord{}, cashadvance.ErrCashAdvanceNotFound
	}
	existing.Balance = c.Balance
	existing.Payments = c.Payments
	existing.UpdatedAt = r.tick()
	r.advances[c.ID] = existing
	return existing, nil
}

func (r CashAdvanceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.advances[id]; !ok {
		return cashadvance.ErrCashAdvanceNotFound
	}
	delete(r.advances, id)
	return nil
}

// DTR

type DTRRepository struct{ *Store }

func dtrKey(employeeID string, date time.Time) string {
	return employeeID + "/" + date.Format("2006-01-02")
}

func (r DTRRepository) List(ctx context.Context, f dtr.DTRFilter) ([]dtr.DTRRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dtr.DTRRecord
	for _, d := range r.dtrs {
		if f.EmployeeID != nil && d.EmployeeID != *f.EmployeeID ||
			f.From != nil && d.Date.Before(*f.From) ||
			f.To != nil && d.Date.After(*f.To) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r DTRRepository) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (dtr.DTRRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.dtrs[dtrKey(employeeID, date)]
	if !ok {
		return dtr.DTRRecord{}, dtr.ErrDTRNotFound
	}
	return d, nil
}

func (r DTRRepository) Upsert(ctx context.Context, d dtr.DTRRecord) (dtr.DTRRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := dtrKey(d.EmployeeID, d.Date)
	if existing, ok := r.dtrs[key]; ok {
		d.ID = existing.ID
		d.CreatedAt = existing.CreatedAt
	} else {
		d.ID = uuid.NewString()
		d.CreatedAt = r.tick()
	}
	d.UpdatedAt = r.tick()
	r.dtrs[key] = d
	return d, nil
}
