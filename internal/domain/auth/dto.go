package auth

import "github.com/tarpworks/payroll-backend/internal/pkg/validator"

type LoginRequest struct {
	Code string `json:"code"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs.Add("code", "is required")
	}
	if len(r.Code) > 128 {
		errs.Add("code", "must not exceed 128 characters")
	}

	return errs.Err()
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}
