package settings

import "errors"

var (
	ErrSettingsNotFound         = errors.New("settings not found")
	ErrCustomCommissionNotFound = errors.New("custom commission not found")
	ErrCustomCommissionExists   = errors.New("custom commission name already exists")
)
