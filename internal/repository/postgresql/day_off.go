package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tarpworks/payroll-backend/internal/domain/dayoff"
	"github.com/tarpworks/payroll-backend/internal/pkg/database"
)

type dayOffRepository struct {
	db *database.DB
}

func NewDayOffRepository(db *database.DB) dayoff.DayOffRepository {
	return &dayOffRepository{db: db}
}

const dayOffSelect = `
	SELECT d.id, d.employee_id, d.date, d.month, d.year, d.pay_period,
		d.absence_count, d.is_qualified, d.hours_paid, d.created_at, d.updated_at, e.name
	FROM day_offs d
	LEFT JOIN employees e ON e.id = d.employee_id`

func scanDayOff(row pgx.Row) (dayoff.DayOffRecord, error) {
	var d dayoff.DayOffRecord
	err := row.Scan(
		&d.ID, &d.EmployeeID, &d.Date, &d.Month, &d.Year, &d.PayPeriod,
		&d.AbsenceCount, &d.IsQualified, &d.HoursPaid, &d.CreatedAt, &d.UpdatedAt, &d.EmployeeName,
	)
	return d, err
}

func (r *dayOffRepository) List(ctx context.Context, filter dayoff.DayOffFilter) ([]dayoff.DayOffRecord, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := dayOffSelect + " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND d.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil {
		baseQuery += fmt.Sprintf(" AND d.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		baseQuery += fmt.Sprintf(" AND d.year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.PayPeriod != nil {
		baseQuery += fmt.Sprintf(" AND d.pay_period = $%d", argIdx)
		args = append(args, string(*filter.PayPeriod))
	}

	baseQuery += " ORDER BY d.date, e.name"

	rows, err := q.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list day offs: %w", err)
	}
	defer rows.Close()

	var records []dayoff.DayOffRecord
	for rows.Next() {
		record, err := scanDayOff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day off: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func (r *dayOffRepository) GetByID(ctx context.Context, id string) (dayoff.DayOffRecord, error) {
	q := GetQuerier(ctx, r.db)

	record, err := scanDayOff(q.QueryRow(ctx, dayOffSelect+" WHERE d.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dayoff.DayOffRecord{}, dayoff.ErrDayOffNotFound
		}
		return dayoff.DayOffRecord{}, fmt.Errorf("failed to get day off %s: %w", id, err)
	}
	return record, nil
}

func (r *dayOffRepository) Create(ctx context.Context, record dayoff.DayOffRecord) (dayoff.DayOffRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO day_offs (employee_id, date, month, year, pay_period, absence_count, is_qualified, hours_paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id string
	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Date, record.Month, record.Year, string(record.PayPeriod),
		record.AbsenceCount, record.IsQualified, record.HoursPaid,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return dayoff.DayOffRecord{}, dayoff.ErrDayOffExists
		}
		return dayoff.DayOffRecord{}, fmt.Errorf("failed to create day off: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *dayOffRepository) Update(ctx context.Context, record dayoff.DayOffRecord) (dayoff.DayOffRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE day_offs SET
			date = $1, month = $2, year = $3, pay_period = $4,
			absence_count = $5, is_qualified = $6, hours_paid = $7, updated_at = NOW()
		WHERE id = $8`

	tag, err := q.Exec(ctx, query,
		record.Date, record.Month, record.Year, string(record.PayPeriod),
		record.AbsenceCount, record.IsQualified, record.HoursPaid, record.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return dayoff.DayOffRecord{}, dayoff.ErrDayOffExists
		}
		return dayoff.DayOffRecord{}, fmt.Errorf("failed to update day off %s: %w", record.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return dayoff.DayOffRecord{}, dayoff.ErrDayOffNotFound
	}

	return r.GetByID(ctx, record.ID)
}

func (r *dayOffRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM day_offs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete day off %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return dayoff.ErrDayOffNotFound
	}
	return nil
}
