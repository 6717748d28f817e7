// Package services – AuthService
//
// This file implements the login flow: credential verification against the
// stored bcrypt digest and JWT issuance. Unknown or deactivated accounts
// report 404 while a wrong password reports 401, matching the distinction
// the API has always exposed to its clients.
package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/medrec/go-medrec-backend/internal/apperr"
	"github.com/medrec/go-medrec-backend/internal/auth"
	"github.com/medrec/go-medrec-backend/internal/domain"
	"github.com/medrec/go-medrec-backend/internal/repo"
)

// LoginInput carries the credentials posted to the login endpoint.
type LoginInput struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// AuthService handles authentication and token issuance.
type AuthService struct {
	DB        *gorm.DB
	JWTSecret string
	JWTTTL    time.Duration
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, JWTSecret: secret, JWTTTL: ttl}
}

// Login verifies credentials and issues a signed token. It returns 404 for
// an unknown or deactivated account and 401 for a wrong password.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.New("user not found", http.StatusNotFound)
		}
		return nil, translate(err, "user")
	}
	if !u.IsActive {
		return nil, apperr.New("user not found", http.StatusNotFound)
	}
	if !auth.ComparePassword(in.Password, u.Password) {
		return nil, apperr.New("invalid credentials", http.StatusUnauthorized)
	}

	token, err := auth.GenerateToken(s.JWTSecret, u.ID, u.Email, u.Role.Name, s.JWTTTL)
	if err != nil {
		return nil, apperr.Internal("could not issue token", err)
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: time.Now().Add(s.JWTTTL),
		User:      u,
	}, nil
}

// Identify resolves a verified token into the request principal. The user
// row is re-read so role changes and deactivation take effect on the next
// request rather than at token expiry.
func (s *AuthService) Identify(ctx context.Context, claims *auth.Claims) (*domain.Principal, error) {
	u, err := repo.GetUser(ctx, s.DB, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.New("account no longer exists", http.StatusUnauthorized)
		}
		return nil, translate(err, "user")
	}
	if !u.IsActive {
		return nil, apperr.New("account is deactivated", http.StatusForbidden)
	}
	return &domain.Principal{
		ID:       u.ID,
		Email:    u.Email,
		RoleName: u.Role.Name,
		RoleID:   u.RoleID,
	}, nil
}
