package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/tarpworks/payroll-backend/internal/domain/employee"
	"github.com/tarpworks/payroll-backend/internal/domain/settings"
	"github.com/tarpworks/payroll-backend/internal/pkg/barcode"
)

const (
	barcodeWidth  = 400
	barcodeHeight = 120
)

type EmployeeServiceImpl struct {
	employeeRepo    employee.EmployeeRepository
	settingsService settings.SettingsService
	recalculator    employee.PayrollRecalculator
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	settingsService settings.SettingsService,
	recalculator employee.PayrollRecalculator,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo:    employeeRepo,
		settingsService: settingsService,
		recalculator:    recalculator,
	}
}

// Helper function to map Employee to EmployeeResponse
func mapEmployeeToResponse(emp employee.Employee, fallbackHours float64) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:            emp.ID,
		Code:          emp.Code,
		Name:          emp.Name,
		ContactNumber: emp.ContactNumber,
		Email:         emp.Email,
		Address:       emp.Address,
		RatePerShift:  emp.RatePerShift,
		HoursPerShift: emp.HoursPerShift,
		HourlyRate:    emp.HourlyRate(fallbackHours).Round(2),
		ShiftType:     string(emp.ShiftType),
		CreatedAt:     emp.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     emp.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func (s *EmployeeServiceImpl) fallbackHours(ctx context.Context) (float64, error) {
	cfg, err := s.settingsService.Current(ctx)
	if err != nil {
		return 0, err
	}
	return cfg.DefaultHoursPerShift, nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	hours, err := s.fallbackHours(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp, hours))
	}
	return responses, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	hours, err := s.fallbackHours(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp, hours), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	code := req.Code
	if code == "" {
		code = generateEmployeeCode()
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Code:          code,
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Address:       req.Address,
		RatePerShift:  req.RatePerShift,
		HoursPerShift: req.HoursPerShift,
		ShiftType:     employee.ShiftType(req.ShiftType),
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "code", created.Code)

	hours, err := s.fallbackHours(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(created, hours), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.UpdateEmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.UpdateEmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.UpdateEmployeeResponse{}, err
	}
	payTermsChanged := req.ChangesPayTerms(current)

	updated, err := s.employeeRepo.Update(ctx, req)
	if err != nil {
		return employee.UpdateEmployeeResponse{}, err
	}

	hours, err := s.fallbackHours(ctx)
	if err != nil {
		return employee.UpdateEmployeeResponse{}, err
	}
	resp := employee.UpdateEmployeeResponse{Employee: mapEmployeeToResponse(updated, hours)}

	if payTermsChanged && s.recalculator != nil {
		result, err := s.recalculator.RecalculateForEmployee(ctx, updated)
		if err != nil {
			// The employee update itself is already saved.
			slog.Error("Failed to recalculate payroll after rate change", "employee_id", updated.ID, "error", err)
			return resp, nil
		}
		resp.Recalculation = &result
	}

	return resp, nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Employee deleted", "employee_id", id)
	return nil
}

// BarcodePNG implements employee.EmployeeService.
func (s *EmployeeServiceImpl) BarcodePNG(ctx context.Context, id string) ([]byte, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	png, err := barcode.Code128PNG(emp.Code, barcodeWidth, barcodeHeight)
	if err != nil {
		return nil, fmt.Errorf("render barcode for %s: %w", emp.Code, err)
	}
	return png, nil
}

func generateEmployeeCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "EMP-" + strings.ToUpper(id[:8])
}
