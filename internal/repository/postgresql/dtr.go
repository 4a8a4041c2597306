package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tarpworks/payroll-backend/internal/domain/dtr"
	"github.com/tarpworks/payroll-backend/internal/pkg/database"
)

type dtrRepository struct {
	db *database.DB
}

func NewDTRRepository(db *database.DB) dtr.DTRRepository {
	return &dtrRepository{db: db}
}

const dtrSelect = `
	SELECT t.id, t.employee_id, t.date, t.am_in, t.am_out, t.pm_in, t.pm_out, t.ot_in, t.ot_out,
		t.created_at, t.updated_at, e.name
	FROM dtr_records t
	LEFT JOIN employees e ON e.id = t.employee_id`

func scanDTR(row pgx.Row) (dtr.DTRRecord, error) {
	var d dtr.DTRRecord
	err := row.Scan(
		&d.ID, &d.EmployeeID, &d.Date, &d.AMIn, &d.AMOut, &d.PMIn, &d.PMOut, &d.OTIn, &d.OTOut,
		&d.CreatedAt, &d.UpdatedAt, &d.EmployeeName,
	)
	return d, err
}

func (r *dtrRepository) List(ctx context.Context, filter dtr.DTRFilter) ([]dtr.DTRRecord, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := dtrSelect + " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND t.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.From != nil {
		baseQuery += fmt.Sprintf(" AND t.date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		baseQuery += fmt.Sprintf(" AND t.date <= $%d", argIdx)
		args = append(args, *filter.To)
	}

	baseQuery += " ORDER BY t.date DESC, e.name"

	rows, err := q.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list dtr records: %w", err)
	}
	defer rows.Close()

	var records []dtr.DTRRecord
	for rows.Next() {
		record, err := scanDTR(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dtr record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func (r *dtrRepository) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (dtr.DTRRecord, error) {
	q := GetQuerier(ctx, r.db)

	record, err := scanDTR(q.QueryRow(ctx, dtrSelect+" WHERE t.employee_id = $1 AND t.date = $2", employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dtr.DTRRecord{}, dtr.ErrDTRNotFound
		}
		return dtr.DTRRecord{}, fmt.Errorf("failed to get dtr record: %w", err)
	}
	return record, nil
}

func (r *dtrRepository) Upsert(ctx context.Context, record dtr.DTRRecord) (dtr.DTRRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO dtr_records (employee_id, date, am_in, am_out, pm_in, pm_out, ot_in, ot_out)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			am_in = EXCLUDED.am_in, am_out = EXCLUDED.am_out,
			pm_in = EXCLUDED.pm_in, pm_out = EXCLUDED.pm_out,
			ot_in = EXCLUDED.ot_in, ot_out = EXCLUDED.ot_out,
			updated_at = NOW()`

	_, err := q.Exec(ctx, query,
		record.EmployeeID, record.Date, record.AMIn, record.AMOut, record.PMIn, record.PMOut, record.OTIn, record.OTOut,
	)
	if err != nil {
		return dtr.DTRRecord{}, fmt.Errorf("failed to save dtr record: %w", err)
	}

	return r.GetByEmployeeDate(ctx, record.EmployeeID, record.Date)
}
