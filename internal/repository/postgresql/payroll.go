package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
	"github.com/tarpworks/payroll-backend/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollSelect = `
	SELECT pr.id, pr.employee_id, pr.month, pr.year, pr.pay_period, pr.time_entries,
		pr.rush_tarp_count, pr.regular_commission_count, pr.custom_commission_counts, pr.cash_advance,
		pr.day_off_hours, pr.regular_hours, pr.overtime_hours, pr.late_minutes,
		pr.regular_pay, pr.overtime_pay, pr.gross_pay, pr.total_commissions,
		pr.late_deduction, pr.total_deductions, pr.net_pay,
		pr.processed, pr.processed_at, pr.created_at, pr.updated_at,
		e.name, e.code
	FROM payroll_records pr
	LEFT JOIN employees e ON e.id = pr.employee_id`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var r payroll.PayrollRecord
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Month, &r.Year, &r.PayPeriod, &r.TimeEntries,
		&r.RushTarpCount, &r.RegularCommissionCount, &r.CustomCommissionCounts, &r.CashAdvance,
		&r.DayOffHours, &r.RegularHours, &r.OvertimeHours, &r.LateMinutes,
		&r.RegularPay, &r.OvertimePay, &r.GrossPay, &r.TotalCommissions,
		&r.LateDeduction, &r.TotalDeductions, &r.NetPay,
		&r.Processed, &r.ProcessedAt, &r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeName, &r.EmployeeCode,
	)
	return r, err
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := payrollSelect + " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil {
		baseQuery += fmt.Sprintf(" AND pr.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		baseQuery += fmt.Sprintf(" AND pr.year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.PayPeriod != nil {
		baseQuery += fmt.Sprintf(" AND pr.pay_period = $%d", argIdx)
		args = append(args, string(*filter.PayPeriod))
		argIdx++
	}
	if filter.Processed != nil {
		baseQuery += fmt.Sprintf(" AND pr.processed = $%d", argIdx)
		args = append(args, *filter.Processed)
	}

	baseQuery += " ORDER BY pr.year DESC, pr.month DESC, pr.pay_period DESC, e.name"

	rows, err := q.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		record, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	record, err := scanPayrollRecord(q.QueryRow(ctx, payrollSelect+" WHERE pr.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record %s: %w", id, err)
	}
	return record, nil
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, period payroll.PayPeriod) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := payrollSelect + " WHERE pr.employee_id = $1 AND pr.month = $2 AND pr.year = $3 AND pr.pay_period = $4"
	record, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year, string(period)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record for employee %s: %w", employeeID, err)
	}
	return record, nil
}

func (r *payrollRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			employee_id, month, year, pay_period, time_entries,
			rush_tarp_count, regular_commission_count, custom_commission_counts, cash_advance,
			day_off_hours, regular_hours, overtime_hours, late_minutes,
			regular_pay, overtime_pay, gross_pay, total_commissions,
			late_deduction, total_deductions, net_pay
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id`

	var id string
	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Month, record.Year, string(record.PayPeriod), record.TimeEntries,
		record.RushTarpCount, record.RegularCommissionCount, record.CustomCommissionCounts, record.CashAdvance,
		record.DayOffHours, record.RegularHours, record.OvertimeHours, record.LateMinutes,
		record.RegularPay, record.OvertimePay, record.GrossPay, record.TotalCommissions,
		record.LateDeduction, record.TotalDeductions, record.NetPay,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *payrollRepository) Update(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records SET
			time_entries = $1, rush_tarp_count = $2, regular_commission_count = $3,
			custom_commission_counts = $4, cash_advance = $5,
			day_off_hours = $6, regular_hours = $7, overtime_hours = $8, late_minutes = $9,
			regular_pay = $10, overtime_pay = $11, gross_pay = $12, total_commissions = $13,
			late_deduction = $14, total_deductions = $15, net_pay = $16,
			updated_at = NOW()
		WHERE id = $17 AND processed = false`

	tag, err := q.Exec(ctx, query,
		record.TimeEntries, record.RushTarpCount, record.RegularCommissionCount,
		record.CustomCommissionCounts, record.CashAdvance,
		record.DayOffHours, record.RegularHours, record.OvertimeHours, record.LateMinutes,
		record.RegularPay, record.OvertimePay, record.GrossPay, record.TotalCommissions,
		record.LateDeduction, record.TotalDeductions, record.NetPay,
		record.ID,
	)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll record %s: %w", record.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.PayrollRecord{}, r.missingOrProcessed(ctx, record.ID)
	}

	return r.GetByID(ctx, record.ID)
}

func (r *payrollRepository) MarkProcessed(ctx context.Context, id string, at time.Time) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		"UPDATE payroll_records SET processed = true, processed_at = $1, updated_at = NOW() WHERE id = $2 AND processed = false",
		at, id,
	)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to process payroll record %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.PayrollRecord{}, r.missingOrProcessed(ctx, id)
	}

	return r.GetByID(ctx, id)
}

func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM payroll_records WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}

// missingOrProcessed explains why a guarded update touched no rows.
func (r *payrollRepository) missingOrProcessed(ctx context.Context, id string) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Processed {
		return payroll.ErrPayrollRecordProcessed
	}
	return fmt.Errorf("payroll record %s was not updated", id)
}
