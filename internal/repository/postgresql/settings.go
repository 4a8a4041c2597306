package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tarpworks/payroll-backend/internal/domain/settings"
	"github.com/tarpworks/payroll-backend/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `default_hours_per_shift, rush_tarp_commission_rate, regular_commission_rate,
	late_deduction_rate, max_absences_for_day_off, custom_commissions, updated_at`

func scanSettings(row pgx.Row) (settings.Settings, error) {
	var s settings.Settings
	err := row.Scan(
		&s.DefaultHoursPerShift, &s.RushTarpCommissionRate, &s.RegularCommissionRate,
		&s.LateDeductionRate, &s.MaxAbsencesForDayOff, &s.CustomCommissions, &s.UpdatedAt,
	)
	return s, err
}

func (r *settingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSettings(q.QueryRow(ctx, "SELECT "+settingsColumns+" FROM settings WHERE id = 1"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Settings{}, settings.ErrSettingsNotFound
		}
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO settings (id, default_hours_per_shift, rush_tarp_commission_rate, regular_commission_rate,
			late_deduction_rate, max_absences_for_day_off, custom_commissions)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			default_hours_per_shift = EXCLUDED.default_hours_per_shift,
			rush_tarp_commission_rate = EXCLUDED.rush_tarp_commission_rate,
			regular_commission_rate = EXCLUDED.regular_commission_rate,
			late_deduction_rate = EXCLUDED.late_deduction_rate,
			max_absences_for_day_off = EXCLUDED.max_absences_for_day_off,
			custom_commissions = EXCLUDED.custom_commissions,
			updated_at = NOW()
		RETURNING ` + settingsColumns

	saved, err := scanSettings(q.QueryRow(ctx, query,
		s.DefaultHoursPerShift, s.RushTarpCommissionRate, s.RegularCommissionRate,
		s.LateDeductionRate, s.MaxAbsencesForDayOff, s.CustomCommissions,
	))
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return saved, nil
}
