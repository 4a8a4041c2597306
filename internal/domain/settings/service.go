package settings

import "context"

type SettingsService interface {
	// Current returns stored settings, or Defaults when none are saved yet.
	Current(ctx context.Context) (Settings, error)
	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
	AddCustomCommission(ctx context.Context, req CreateCustomCommissionRequest) (SettingsResponse, error)
	RemoveCustomCommission(ctx context.Context, id string) (SettingsResponse, error)
}
