package service

import (
	"context"
	"fmt"

	"lapor/internal/auth"
	errs "lapor/internal/errors"
	"lapor/internal/model"
)

// AuthService handles credential checks and token lifecycle.
type AuthService interface {
	Login(ctx context.Context, pjlpNumber string, role model.Role, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	gate       *auth.Gate
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(gate *auth.Gate, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		gate:       gate,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Login authenticates against the users snapshot and returns access
// and refresh tokens.
func (s *authService) Login(ctx context.Context, pjlpNumber string, role model.Role, password string) (string, string, *model.User, error) {
	user, err := s.gate.Login(pjlpNumber, role, password)
	if err != nil {
		return "", "", nil, err
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Role, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", errs.ErrInvalidCredentials
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", errs.ErrInvalidCredentials
	}

	storedUserID, storedRole, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", errs.ErrInvalidCredentials
	}
	if storedUserID != claims.UserID || storedRole != claims.Role {
		return "", errs.ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates the refresh token and clears the session.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return errs.ErrInvalidCredentials
	}
	s.gate.Logout()
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}
