package settings

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/tarpworks/payroll-backend/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settingsRepo settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

// Current implements settings.SettingsService.
func (s *SettingsServiceImpl) Current(ctx context.Context) (settings.Settings, error) {
	current, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, settings.ErrSettingsNotFound) {
		return settings.Defaults(), nil
	}
	if err != nil {
		return settings.Settings{}, err
	}
	if current.DefaultHoursPerShift <= 0 {
		current.DefaultHoursPerShift = settings.Defaults().DefaultHoursPerShift
	}
	return current, nil
}

// GetSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (settings.SettingsResponse, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return settings.ToResponse(current), nil
}

// UpdateSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	current, err := s.Current(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	saved, err := s.settingsRepo.Upsert(ctx, req.Apply(current))
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	slog.Info("Settings updated")
	return settings.ToResponse(saved), nil
}

// AddCustomCommission implements settings.SettingsService.
func (s *SettingsServiceImpl) AddCustomCommission(ctx context.Context, req settings.CreateCustomCommissionRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	current, err := s.Current(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	for _, c := range current.CustomCommissions {
		if strings.EqualFold(c.Name, req.Name) {
			return settings.SettingsResponse{}, settings.ErrCustomCommissionExists
		}
	}

	custom := make(settings.CustomCommissions, len(current.CustomCommissions), len(current.CustomCommissions)+1)
	copy(custom, current.CustomCommissions)
	current.CustomCommissions = append(custom, settings.CustomCommission{
		ID:   uuid.NewString(),
		Name: req.Name,
		Rate: req.Rate,
	})

	saved, err := s.settingsRepo.Upsert(ctx, current)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return settings.ToResponse(saved), nil
}

// RemoveCustomCommission implements settings.SettingsService.
// Counts already stored on payroll records for the removed id stop contributing.
func (s *SettingsServiceImpl) RemoveCustomCommission(ctx context.Context, id string) (settings.SettingsResponse, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	kept := make(settings.CustomCommissions, 0, len(current.CustomCommissions))
	for _, c := range current.CustomCommissions {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(current.CustomCommissions) {
		return settings.SettingsResponse{}, settings.ErrCustomCommissionNotFound
	}
	current.CustomCommissions = kept

	saved, err := s.settingsRepo.Upsert(ctx, current)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return settings.ToResponse(saved), nil
}
