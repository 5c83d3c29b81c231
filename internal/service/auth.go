package service

import (
	"context"
	"errors"
	"fmt"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/logger"
	"tahseel-backend/internal/repository"
	"tahseel-backend/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, string, *domain.User, error) {
	logger.EnterMethod("authService.Login", "username", username)

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", nil, domain.ErrInvalidCredentials
		}
		logger.ExitMethodWithError("authService.Login", err, "username", username)
		return "", "", nil, err
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		return "", "", nil, domain.ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return "", "", nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return "", "", nil, err
	}

	logger.ExitMethod("authService.Login", "userID", user.ID)
	return access, refresh, user, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	// Re-read the user so role changes take effect on refresh.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}

	access, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return "", "", err
	}
	newRefresh, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return "", "", err
	}
	return access, newRefresh, nil
}

func (s *authService) Register(ctx context.Context, user *domain.User, password string) error {
	logger.EnterMethod("authService.Register", "username", user.Username, "role", user.Role)

	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	switch user.Role {
	case domain.UserRoleAdmin, domain.UserRoleManager, domain.UserRoleCollector:
	default:
		return fmt.Errorf("invalid role %q", user.Role)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ExitMethodWithError("authService.Register", err, "username", user.Username)
		return err
	}
	logger.ExitMethod("authService.Register", "userID", user.ID)
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID int32, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !security.CheckPassword(user.PasswordHash, oldPassword) {
		return domain.ErrInvalidCredentials
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hash)
}
