package auth

import "context"

type AuthService interface {
	// Login exchanges the shared operator access code for an access token.
	Login(ctx context.Context, req LoginRequest, clientIP string) (LoginResponse, error)
}
