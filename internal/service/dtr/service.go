package dtr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tarpworks/payroll-backend/internal/domain/dtr"
	"github.com/tarpworks/payroll-backend/internal/domain/employee"
	"github.com/tarpworks/payroll-backend/internal/pkg/notifier"
)

type DTRServiceImpl struct {
	dtrRepo      dtr.DTRRepository
	employeeRepo employee.EmployeeRepository
	notifier     notifier.Notifier
	now          func() time.Time
}

func NewDTRService(dtrRepo dtr.DTRRepository, employeeRepo employee.EmployeeRepository, n notifier.Notifier, loc *time.Location) dtr.DTRService {
	if n == nil {
		n = notifier.Nop{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &DTRServiceImpl{
		dtrRepo:      dtrRepo,
		employeeRepo: employeeRepo,
		notifier:     n,
		now:          func() time.Time { return time.Now().In(loc) },
	}
}

// CheckIn implements dtr.DTRService.
func (s *DTRServiceImpl) CheckIn(ctx context.Context, req dtr.CheckInRequest) (dtr.CheckInResponse, error) {
	if err := req.Validate(s.now()); err != nil {
		return dtr.CheckInResponse{}, err
	}

	emp, err := s.employeeRepo.GetByCode(ctx, req.Barcode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return dtr.CheckInResponse{}, dtr.ErrUnknownBarcode
		}
		return dtr.CheckInResponse{}, err
	}

	record, err := s.dtrRepo.GetByEmployeeDate(ctx, emp.ID, req.ParsedDate)
	if errors.Is(err, dtr.ErrDTRNotFound) {
		record = dtr.DTRRecord{EmployeeID: emp.ID, Date: req.ParsedDate}
	} else if err != nil {
		return dtr.CheckInResponse{}, err
	}

	updated, column, applied := record.Punch(dtr.Column(req.Column), req.Time)
	resp := dtr.CheckInResponse{
		EmployeeName: emp.Name,
		Column:       string(column),
		Time:         req.Time,
		Applied:      applied,
	}

	if !applied {
		if column == "" {
			resp.Warning = "all time columns for this date are already filled"
		} else {
			resp.Warning = fmt.Sprintf("%s is already recorded as %s", column, record.Get(column))
		}
		resp.Record = dtr.ToResponse(withName(record, emp.Name))
		return resp, nil
	}

	saved, err := s.dtrRepo.Upsert(ctx, updated)
	if err != nil {
		return dtr.CheckInResponse{}, err
	}
	resp.Record = dtr.ToResponse(withName(saved, emp.Name))

	text := fmt.Sprintf("%s (%s) %s %s on %s", emp.Name, emp.Code, column, req.Time, req.ParsedDate.Format("2006-01-02"))
	if err := s.notifier.Notify(ctx, text); err != nil {
		slog.Warn("Failed to send check-in notice", "employee_id", emp.ID, "error", err)
	}

	return resp, nil
}

// ListDTR implements dtr.DTRService.
func (s *DTRServiceImpl) ListDTR(ctx context.Context, filter dtr.DTRFilter) ([]dtr.DTRResponse, error) {
	records, err := s.dtrRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dtr.DTRResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, dtr.ToResponse(r))
	}
	return responses, nil
}

func withName(r dtr.DTRRecord, name string) dtr.DTRRecord {
	if r.EmployeeName == nil {
		r.EmployeeName = &name
	}
	return r
}
