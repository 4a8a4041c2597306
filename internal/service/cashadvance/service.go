package cashadvance

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tarpworks/payroll-backend/internal/domain/cashadvance"
	"github.com/tarpworks/payroll-backend/internal/domain/employee"
	"github.com/tarpworks/payroll-backend/internal/pkg/database"
)

type CashAdvanceServiceImpl struct {
	tx              database.Transactor
	cashAdvanceRepo cashadvance.CashAdvanceRepository
	employeeRepo    employee.EmployeeRepository
	now             func() time.Time
}

func NewCashAdvanceService(
	tx database.Transactor,
	cashAdvanceRepo cashadvance.CashAdvanceRepository,
	employeeRepo employee.EmployeeRepository,
) cashadvance.CashAdvanceService {
	return &CashAdvanceServiceImpl{
		tx:              tx,
		cashAdvanceRepo: cashAdvanceRepo,
		employeeRepo:    employeeRepo,
		now:             time.Now,
	}
}

// ListCashAdvances implements cashadvance.CashAdvanceService.
func (s *CashAdvanceServiceImpl) ListCashAdvances(ctx context.Context, employeeID *string) ([]cashadvance.CashAdvanceResponse, error) {
	records, err := s.cashAdvanceRepo.List(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]cashadvance.CashAdvanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, cashadvance.ToResponse(r))
	}
	return responses, nil
}

// CreateCashAdvance implements cashadvance.CashAdvanceService.
func (s *CashAdvanceServiceImpl) CreateCashAdvance(ctx context.Context, req cashadvance.CreateCashAdvanceRequest) (cashadvance.CashAdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return cashadvance.CashAdvanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return cashadvance.CashAdvanceResponse{}, err
	}

	created, err := s.cashAdvanceRepo.Create(ctx, cashadvance.NewAdvance(req.EmployeeID, req.Amount.Round(2), req.ParsedDate, req.Notes))
	if err != nil {
		return cashadvance.CashAdvanceResponse{}, err
	}

	slog.Info("Cash advance created", "cash_advance_id", created.ID, "employee_id", created.EmployeeID,
		"amount", created.Amount.StringFixed(2))
	return cashadvance.ToResponse(created), nil
}

// DeleteCashAdvance implements cashadvance.CashAdvanceService.
func (s *CashAdvanceServiceImpl) DeleteCashAdvance(ctx context.Context, id string) error {
	return s.cashAdvanceRepo.Delete(ctx, id)
}

// AddPayment implements cashadvance.CashAdvanceService.
func (s *CashAdvanceServiceImpl) AddPayment(ctx context.Context, req cashadvance.AddPaymentRequest) (cashadvance.CashAdvanceResponse, error) {
	if err := req.Validate(s.now()); err != nil {
		return cashadvance.CashAdvanceResponse{}, err
	}

	var updated cashadvance.CashAdvanceRecord
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := s.cashAdvanceRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if !record.IsOpen() {
			return cashadvance.ErrCashAdvanceSettled
		}
		amount := req.Amount.Round(2)
		if amount.GreaterThan(record.Balance) {
			return cashadvance.ErrPaymentExceedsBalance
		}

		updated, err = s.cashAdvanceRepo.UpdateLedger(ctx, cashadvance.ApplyPayment(record, amount, req.ParsedDate, req.Notes))
		return err
	})
	if err != nil {
		return cashadvance.CashAdvanceResponse{}, err
	}

	return cashadvance.ToResponse(updated), nil
}

// Balance implements cashadvance.CashAdvanceService.
func (s *CashAdvanceServiceImpl) Balance(ctx context.Context, employeeID string) (cashadvance.BalanceResponse, error) {
	records, err := s.cashAdvanceRepo.List(ctx, &employeeID)
	if err != nil {
		return cashadvance.BalanceResponse{}, err
	}

	open := 0
	for _, r := range records {
		if r.IsOpen() {
			open++
		}
	}

	return cashadvance.BalanceResponse{
		EmployeeID:  employeeID,
		Balance:     cashadvance.TotalBalance(records),
		OpenRecords: open,
	}, nil
}

// DeductFromPayroll implements cashadvance.CashAdvanceService.
func (s *CashAdvanceServiceImpl) DeductFromPayroll(ctx context.Context, employeeID string, amount decimal.Decimal) (decimal.Decimal, error) {
	remaining := amount
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		records, err := s.cashAdvanceRepo.List(ctx, &employeeID)
		if err != nil {
			return err
		}

		var changed []cashadvance.CashAdvanceRecord
		changed, remaining = cashadvance.ApplyPayrollDeduction(records, amount, s.now())
		for _, r := range changed {
			if _, err := s.cashAdvanceRepo.UpdateLedger(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return amount, err
	}
	return remaining, nil
}
