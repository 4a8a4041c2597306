package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tarpworks/payroll-backend/internal/domain/cashadvance"
	"github.com/tarpworks/payroll-backend/internal/pkg/database"
)

type cashAdvanceRepository struct {
	db *database.DB
}

func NewCashAdvanceRepository(db *database.DB) cashadvance.CashAdvanceRepository {
	return &cashAdvanceRepository{db: db}
}

const cashAdvanceSelect = `
	SELECT ca.id, ca.employee_id, ca.amount, ca.date, ca.notes, ca.balance, ca.payments,
		ca.created_at, ca.updated_at, e.name
	FROM cash_advances ca
	LEFT JOIN employees e ON e.id = ca.employee_id`

func scanCashAdvance(row pgx.Row) (cashadvance.CashAdvanceRecord, error) {
	var c cashadvance.CashAdvanceRecord
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.Amount, &c.Date, &c.Notes, &c.Balance, &c.Payments,
		&c.CreatedAt, &c.UpdatedAt, &c.EmployeeName,
	)
	return c, err
}

// List returns records oldest first, the order payroll deductions consume them.
func (r *cashAdvanceRepository) List(ctx context.Context, employeeID *string) ([]cashadvance.CashAdvanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := cashAdvanceSelect
	args := []interface{}{}
	if employeeID != nil {
		query += " WHERE ca.employee_id = $1"
		args = append(args, *employeeID)
	}
	query += " ORDER BY ca.date, ca.created_at"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash advances: %w", err)
	}
	defer rows.Close()

	var records []cashadvance.CashAdvanceRecord
	for rows.Next() {
		record, err := scanCashAdvance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash advance: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func (r *cashAdvanceRepository) GetByID(ctx context.Context, id string) (cashadvance.CashAdvanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	record, err := scanCashAdvance(q.QueryRow(ctx, cashAdvanceSelect+" WHERE ca.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cashadvance.CashAdvanceRecord{}, cashadvance.ErrCashAdvanceNotFound
		}
		return cashadvance.CashAdvanceRecord{}, fmt.Errorf("failed to get cash advance %s: %w", id, err)
	}
	return record, nil
}

func (r *cashAdvanceRepository) Create(ctx context.Context, record cashadvance.CashAdvanceRecord) (cashadvance.CashAdvanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO cash_advances (employee_id, amount, date, notes, balance, payments)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id string
	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Amount, record.Date, record.Notes, record.Balance, record.Payments,
	).Scan(&id)
	if err != nil {
		return cashadvance.CashAdvanceRecord{}, fmt.Errorf("failed to create cash advance: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *cashAdvanceRepository) UpdateLedger(ctx context.Context, record cashadvance.CashAdvanceRecord) (cashadvance.CashAdvanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		"UPDATE cash_advances SET balance = $1, payments = $2, updated_at = NOW() WHERE id = $3",
		record.Balance, record.Payments, record.ID,
	)
	if err != nil {
		return cashadvance.CashAdvanceRecord{}, fmt.Errorf("failed to update cash advance %s: %w", record.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return cashadvance.CashAdvanceRecord{}, cashadvance.ErrCashAdvanceNotFound
	}

	return r.GetByID(ctx, record.ID)
}

func (r *cashAdvanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM cash_advances WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete cash advance %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return cashadvance.ErrCashAdvanceNotFound
	}
	return nil
}
