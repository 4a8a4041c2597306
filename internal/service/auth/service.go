package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tarpworks/payroll-backend/internal/domain/auth"
	"github.com/tarpworks/payroll-backend/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxFailedAttempts = 5
	attemptWindow     = 15 * time.Minute
)

type attempt struct {
	failures int
	first    time.Time
}

type AuthServiceImpl struct {
	jwt.Service
	codeHash []byte
	now      func() time.Time

	mu       sync.Mutex
	attempts map[string]attempt
}

// NewAuthService accepts either a bcrypt hash of the access code or the plain
// code, which is hashed once here.
func NewAuthService(jwtService jwt.Service, accessCodeHash, accessCode string) (auth.AuthService, error) {
	hash := []byte(accessCodeHash)
	if accessCodeHash == "" {
		var err error
		hash, err = hashCode(accessCode)
		if err != nil {
			return nil, err
		}
	}
	return &AuthServiceImpl{
		Service:  jwtService,
		codeHash: hash,
		now:      time.Now,
		attempts: make(map[string]attempt),
	}, nil
}

func hashCode(code string) ([]byte, error) {
	if code == "" {
		return nil, fmt.Errorf("access code is not configured")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash access code: %w", err)
	}
	return hash, nil
}

func (a *AuthServiceImpl) blocked(clientIP string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	at, ok := a.attempts[clientIP]
	if !ok {
		return false
	}
	if a.now().Sub(at.first) > attemptWindow {
		delete(a.attempts, clientIP)
		return false
	}
	return at.failures >= maxFailedAttempts
}

func (a *AuthServiceImpl) recordFailure(clientIP string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	at, ok := a.attempts[clientIP]
	if !ok || a.now().Sub(at.first) > attemptWindow {
		at = attempt{first: a.now()}
	}
	at.failures++
	a.attempts[clientIP] = at
}

func (a *AuthServiceImpl) reset(clientIP string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.attempts, clientIP)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, clientIP string) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}
	if a.blocked(clientIP) {
		return auth.LoginResponse{}, auth.ErrTooManyAttempts
	}

	if err := bcrypt.CompareHashAndPassword(a.codeHash, []byte(req.Code)); err != nil {
		a.recordFailure(clientIP)
		slog.Warn("Failed login attempt", "client_ip", clientIP)
		return auth.LoginResponse{}, auth.ErrInvalidAccessCode
	}
	a.reset(clientIP)

	token, expiresAt, err := a.Service.GenerateAccessToken(clientIP)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{AccessToken: token, ExpiresAt: expiresAt}, nil
}
